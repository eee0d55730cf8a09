package storetest_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/internal/store/storetest"
)

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	notes := storetest.Notes()

	owner := uuid.New()
	intruder := uuid.New()

	note := models.Note{UserID: owner, Title: "private", Content: "x"}
	require.NoError(t, notes.Insert(ctx, &note))

	found, err := notes.Find(ctx, intruder, store.Query{})
	require.NoError(t, err)
	assert.Empty(t, found)

	_, err = notes.Get(ctx, intruder, note.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = notes.Update(ctx, intruder, note.ID, map[string]interface{}{"title": "stolen"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = notes.Delete(ctx, intruder, note.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// The owner still sees the untouched note.
	got, err := notes.Get(ctx, owner, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestFindAppliesQuery(t *testing.T) {
	ctx := context.Background()
	notes := storetest.Notes()
	owner := uuid.New()

	first := models.Note{UserID: owner, Title: "alpha plan", Content: "x", Tags: []string{"work"}}
	second := models.Note{UserID: owner, Title: "beta", Content: "alpha mention", Tags: nil}
	require.NoError(t, notes.Insert(ctx, &first))
	require.NoError(t, notes.Insert(ctx, &second))

	matched, err := notes.Find(ctx, owner, store.Query{Search: "ALPHA"})
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = notes.Find(ctx, owner, store.Query{Search: "work"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, first.ID, matched[0].ID)

	restricted, err := notes.Find(ctx, owner, store.Query{IDs: []uuid.UUID{second.ID}})
	require.NoError(t, err)
	require.Len(t, restricted, 1)
	assert.Equal(t, second.ID, restricted[0].ID)
}
