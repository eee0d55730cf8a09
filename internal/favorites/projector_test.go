package favorites_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnuddindev/secondbrain/internal/favorites"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store/storetest"
)

type recordedActivity struct {
	Type        models.ActivityType
	Description string
	ResourceID  uuid.UUID
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []recordedActivity
}

func (r *fakeRecorder) Record(userID uuid.UUID, typ models.ActivityType, description string, resourceID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, recordedActivity{Type: typ, Description: description, ResourceID: resourceID})
}

type fixture struct {
	store     *storetest.Favorites
	notes     *storetest.Collection[models.Note]
	bookmarks *storetest.Collection[models.Bookmark]
	recorder  *fakeRecorder
	projector *favorites.Projector
	userID    uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		store:     storetest.NewFavorites(),
		notes:     storetest.Notes(),
		bookmarks: storetest.Bookmarks(),
		recorder:  &fakeRecorder{},
		userID:    uuid.New(),
	}
	f.projector = favorites.NewProjector(f.store, f.notes, f.bookmarks, f.recorder)
	return f
}

func (f *fixture) addNote(t *testing.T, title string) models.Note {
	t.Helper()
	note := models.Note{UserID: f.userID, Title: title, Content: "x"}
	require.NoError(t, f.notes.Insert(context.Background(), &note))
	return note
}

func (f *fixture) addBookmark(t *testing.T, title string) models.Bookmark {
	t.Helper()
	bookmark := models.Bookmark{UserID: f.userID, Title: title, URL: "https://example.com"}
	require.NoError(t, f.bookmarks.Insert(context.Background(), &bookmark))
	return bookmark
}

func TestAddFavoriteNote(t *testing.T) {
	f := newFixture()
	note := f.addNote(t, "reading list")

	view, err := f.projector.Add(context.Background(), f.userID, note.ID, models.ItemNote)
	require.NoError(t, err)

	assert.Equal(t, note.ID, view.ItemID)
	assert.Equal(t, models.ItemNote, view.ItemType)
	require.NotNil(t, view.Note)
	assert.Equal(t, "reading list", view.Note.Title)

	require.Len(t, f.recorder.entries, 1)
	assert.Equal(t, models.ActivityItemFavorited, f.recorder.entries[0].Type)
	assert.Equal(t, "Favorited: reading list", f.recorder.entries[0].Description)
	assert.Equal(t, note.ID, f.recorder.entries[0].ResourceID)
}

func TestAddUnknownItemIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.projector.Add(context.Background(), f.userID, uuid.New(), models.ItemNote)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Item not found")
	assert.Empty(t, f.recorder.entries)
}

func TestAddForeignItemIsNotFound(t *testing.T) {
	f := newFixture()
	foreign := models.Note{UserID: uuid.New(), Title: "not yours", Content: "x"}
	require.NoError(t, f.notes.Insert(context.Background(), &foreign))

	_, err := f.projector.Add(context.Background(), f.userID, foreign.ID, models.ItemNote)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Item not found")
}

func TestAddInvalidItemType(t *testing.T) {
	f := newFixture()

	_, err := f.projector.Add(context.Background(), f.userID, uuid.New(), models.ItemType("Comment"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid item type")
}

func TestAddDuplicateIsConflict(t *testing.T) {
	f := newFixture()
	note := f.addNote(t, "once")

	_, err := f.projector.Add(context.Background(), f.userID, note.ID, models.ItemNote)
	require.NoError(t, err)

	_, err = f.projector.Add(context.Background(), f.userID, note.ID, models.ItemNote)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already favorited")
	// Only the first add fires an activity.
	assert.Len(t, f.recorder.entries, 1)
}

func TestRemoveMissingFavoriteSucceeds(t *testing.T) {
	f := newFixture()

	err := f.projector.Remove(context.Background(), f.userID, uuid.New())
	assert.NoError(t, err)
}

func TestFavoriteThenRemove(t *testing.T) {
	f := newFixture()
	bookmark := f.addBookmark(t, "daily read")
	ctx := context.Background()

	view, err := f.projector.Add(ctx, f.userID, bookmark.ID, models.ItemBookmark)
	require.NoError(t, err)

	views, err := f.projector.List(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NoError(t, f.projector.Remove(ctx, f.userID, view.ID))

	views, err = f.projector.List(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListNewestFirstWithSources(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	note := f.addNote(t, "first")
	bookmark := f.addBookmark(t, "second")

	earlier := time.Now().Add(-time.Hour)
	require.NoError(t, f.store.Insert(ctx, &models.Favorite{
		UserID: f.userID, ItemID: note.ID, ItemType: models.ItemNote, CreatedAt: earlier,
	}))
	require.NoError(t, f.store.Insert(ctx, &models.Favorite{
		UserID: f.userID, ItemID: bookmark.ID, ItemType: models.ItemBookmark,
	}))

	views, err := f.projector.List(ctx, f.userID)
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, models.ItemBookmark, views[0].ItemType)
	require.NotNil(t, views[0].Bookmark)
	assert.Equal(t, models.ItemNote, views[1].ItemType)
	require.NotNil(t, views[1].Note)
}

func TestListSkipsOrphanedFavorites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	note := f.addNote(t, "doomed")

	_, err := f.projector.Add(ctx, f.userID, note.ID, models.ItemNote)
	require.NoError(t, err)
	require.NoError(t, f.notes.Delete(ctx, f.userID, note.ID))

	views, err := f.projector.List(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
