package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnuddindev/secondbrain/internal/activity"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store/storetest"
	"github.com/mnuddindev/secondbrain/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(context.Background(), logger.WithOutputDir(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(log.Close)
	return log
}

func TestRecordWritesActivity(t *testing.T) {
	activities := storetest.Activities()
	recorder := activity.NewRecorder(activities, newTestLogger(t))

	userID := uuid.New()
	resourceID := uuid.New()
	recorder.Record(userID, models.ActivityNoteCreated, "Created note: hello", resourceID)
	recorder.Close()

	stored := activities.All()
	require.Len(t, stored, 1)
	assert.Equal(t, userID, stored[0].UserID)
	assert.Equal(t, models.ActivityNoteCreated, stored[0].Type)
	assert.Equal(t, "Created note: hello", stored[0].Description)
	require.NotNil(t, stored[0].ResourceID)
	assert.Equal(t, resourceID, *stored[0].ResourceID)
}

func TestRecordNeverBlocks(t *testing.T) {
	activities := storetest.Activities()
	recorder := activity.NewRecorder(activities, newTestLogger(t))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			recorder.Record(uuid.New(), models.ActivityBookmarkAdded, "Added bookmark", uuid.Nil)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
	recorder.Close()
}

func TestCloseDrainsQueue(t *testing.T) {
	activities := storetest.Activities()
	recorder := activity.NewRecorder(activities, newTestLogger(t))

	userID := uuid.New()
	for i := 0; i < 50; i++ {
		recorder.Record(userID, models.ActivityCommentPosted, "Commented on: post", uuid.Nil)
	}
	recorder.Close()

	// Everything that made it into the queue is flushed on close.
	assert.NotEmpty(t, activities.All())
	for _, entry := range activities.All() {
		assert.Equal(t, models.ActivityCommentPosted, entry.Type)
		assert.Nil(t, entry.ResourceID)
	}
}
