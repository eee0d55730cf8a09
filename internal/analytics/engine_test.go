package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnuddindev/secondbrain/internal/analytics"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store/storetest"
)

type fixture struct {
	notes      *storetest.Collection[models.Note]
	bookmarks  *storetest.Collection[models.Bookmark]
	comments   *storetest.Collection[models.Comment]
	activities *storetest.Collection[models.Activity]
	favorites  *storetest.Favorites
	engine     *analytics.Engine
	userID     uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		notes:      storetest.Notes(),
		bookmarks:  storetest.Bookmarks(),
		comments:   storetest.Comments(),
		activities: storetest.Activities(),
		favorites:  storetest.NewFavorites(),
		userID:     uuid.New(),
	}
	f.engine = analytics.NewEngine(f.notes, f.bookmarks, f.comments, f.activities, f.favorites)
	return f
}

func (f *fixture) addNote(t *testing.T, title string, tags ...string) models.Note {
	t.Helper()
	note := models.Note{UserID: f.userID, Title: title, Content: "content", Tags: tags}
	require.NoError(t, f.notes.Insert(context.Background(), &note))
	return note
}

func (f *fixture) addBookmark(t *testing.T, title string, tags ...string) models.Bookmark {
	t.Helper()
	bookmark := models.Bookmark{UserID: f.userID, Title: title, URL: "https://example.com", Tags: tags}
	require.NoError(t, f.bookmarks.Insert(context.Background(), &bookmark))
	return bookmark
}

func (f *fixture) addActivityAt(t *testing.T, at time.Time) {
	t.Helper()
	activity := models.Activity{UserID: f.userID, Type: models.ActivityNoteCreated, Description: "x", CreatedAt: at}
	require.NoError(t, f.activities.Insert(context.Background(), &activity))
}

func TestOverviewAlwaysFourBuckets(t *testing.T) {
	f := newFixture()

	buckets, err := f.engine.Overview(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, buckets, 4)
	assert.Equal(t, []analytics.Bucket{
		{Name: "Notes", Value: 0},
		{Name: "Bookmarks", Value: 0},
		{Name: "Comments", Value: 0},
		{Name: "Activities", Value: 0},
	}, buckets)
}

func TestOverviewCounts(t *testing.T) {
	f := newFixture()
	f.addNote(t, "one")
	f.addNote(t, "two")
	f.addBookmark(t, "bm")

	buckets, err := f.engine.Overview(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, buckets, 4)
	assert.Equal(t, 2, buckets[0].Value)
	assert.Equal(t, 1, buckets[1].Value)
	assert.Equal(t, 0, buckets[2].Value)
}

func TestNotesByTagUntaggedBucket(t *testing.T) {
	f := newFixture()
	f.addNote(t, "tagged", "go")
	f.addNote(t, "untagged")

	buckets, err := f.engine.NotesByTag(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, buckets, 2)
	names := []string{buckets[0].Name, buckets[1].Name}
	assert.Contains(t, names, "go")
	assert.Contains(t, names, "Untagged")
}

func TestNotesByTagTieOrderIsFirstSeen(t *testing.T) {
	f := newFixture()
	f.addNote(t, "a", "beta")
	f.addNote(t, "b", "alpha")

	buckets, err := f.engine.NotesByTag(context.Background(), f.userID)
	require.NoError(t, err)

	// Equal counts keep insertion order, not alphabetical order.
	require.Len(t, buckets, 2)
	assert.Equal(t, "beta", buckets[0].Name)
	assert.Equal(t, "alpha", buckets[1].Name)
}

func TestNotesByTagTopTenTruncation(t *testing.T) {
	f := newFixture()
	for i := 0; i < 12; i++ {
		f.addNote(t, "n", fmt.Sprintf("tag%02d", i))
	}
	f.addNote(t, "heavy", "tag05")

	buckets, err := f.engine.NotesByTag(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, buckets, 10)
	assert.Equal(t, "tag05", buckets[0].Name)
	assert.Equal(t, 2, buckets[0].Value)
}

func TestActivityOverTimeGapSparse(t *testing.T) {
	f := newFixture()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f.engine.SetNow(func() time.Time { return now })

	f.addActivityAt(t, now.AddDate(0, 0, -3))
	f.addActivityAt(t, now.AddDate(0, 0, -1))
	f.addActivityAt(t, now.AddDate(0, 0, -1))
	// Outside the 7-day window, must not appear.
	f.addActivityAt(t, now.AddDate(0, 0, -9))

	buckets, err := f.engine.ActivityOverTime(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-03-07", buckets[0].Name)
	assert.Equal(t, 1, buckets[0].Value)
	assert.Equal(t, "2026-03-09", buckets[1].Name)
	assert.Equal(t, 2, buckets[1].Value)
}

func TestPopularTagsUnionsNotesAndBookmarks(t *testing.T) {
	f := newFixture()
	f.addNote(t, "n1", "go", "web")
	f.addBookmark(t, "b1", "go")

	buckets, err := f.engine.PopularTags(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, buckets, 2)
	assert.Equal(t, analytics.Bucket{Name: "go", Value: 2}, buckets[0])
	assert.Equal(t, analytics.Bucket{Name: "web", Value: 1}, buckets[1])
}

func TestStatsEmptyUser(t *testing.T) {
	f := newFixture()

	stats, err := f.engine.Stats(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalNotes)
	assert.Zero(t, stats.TotalFavorites)
	assert.Nil(t, stats.LastActivityDate)
}

func TestStatsTotalsAndLastActivity(t *testing.T) {
	f := newFixture()
	note := f.addNote(t, "n")
	f.addBookmark(t, "b")

	require.NoError(t, f.favorites.Insert(context.Background(), &models.Favorite{
		UserID: f.userID, ItemID: note.ID, ItemType: models.ItemNote,
	}))

	latest := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	f.addActivityAt(t, latest.Add(-time.Hour))
	f.addActivityAt(t, latest)

	stats, err := f.engine.Stats(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalNotes)
	assert.Equal(t, int64(1), stats.TotalBookmarks)
	assert.Equal(t, int64(1), stats.TotalFavorites)
	require.NotNil(t, stats.LastActivityDate)
	assert.True(t, stats.LastActivityDate.Equal(latest))
}

func TestDashboardCounts(t *testing.T) {
	f := newFixture()
	f.addNote(t, "n")
	bookmark := f.addBookmark(t, "b")
	require.NoError(t, f.favorites.Insert(context.Background(), &models.Favorite{
		UserID: f.userID, ItemID: bookmark.ID, ItemType: models.ItemBookmark,
	}))

	stats, err := f.engine.Dashboard(context.Background(), f.userID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Notes)
	assert.Equal(t, int64(1), stats.Bookmarks)
	assert.Equal(t, int64(1), stats.Favorites)
}

func TestSeriesSelectors(t *testing.T) {
	f := newFixture()

	for _, selector := range []string{"", "overview", "categories", "bookmarks", "activity", "tags"} {
		_, err := f.engine.Series(context.Background(), f.userID, selector)
		assert.NoError(t, err, "selector %q", selector)
	}

	_, err := f.engine.Series(context.Background(), f.userID, "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid analytics type")
}

func TestSeriesIgnoresOtherUsers(t *testing.T) {
	f := newFixture()
	other := models.Note{UserID: uuid.New(), Title: "foreign", Tags: []string{"x"}}
	require.NoError(t, f.notes.Insert(context.Background(), &other))

	buckets, err := f.engine.NotesByTag(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}
