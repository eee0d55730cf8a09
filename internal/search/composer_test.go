package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/search"
	"github.com/mnuddindev/secondbrain/internal/store/storetest"
)

type fixture struct {
	notes     *storetest.Collection[models.Note]
	bookmarks *storetest.Collection[models.Bookmark]
	comments  *storetest.Collection[models.Comment]
	favorites *storetest.Favorites
	composer  *search.Composer
	userID    uuid.UUID
}

func newFixture(owner models.User) *fixture {
	f := &fixture{
		notes:     storetest.Notes(),
		bookmarks: storetest.Bookmarks(),
		comments:  storetest.Comments(),
		favorites: storetest.NewFavorites(),
		userID:    owner.ID,
	}
	f.composer = search.NewComposer(f.notes, f.bookmarks, f.comments, storetest.NewUsers(owner), f.favorites)
	return f
}

func owner() models.User {
	return models.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
}

func TestParseScope(t *testing.T) {
	for param, want := range map[string]search.Scope{
		"":          search.ScopeAll,
		"all":       search.ScopeAll,
		"notes":     search.ScopeNotes,
		"bookmarks": search.ScopeBookmarks,
		"comments":  search.ScopeComments,
		"favorites": search.ScopeFavorites,
	} {
		scope, err := search.ParseScope(param)
		require.NoError(t, err, "param %q", param)
		assert.Equal(t, want, scope)
	}

	_, err := search.ParseScope("everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid search type")
}

func TestBlankQuerySkipsStorage(t *testing.T) {
	user := owner()
	f := newFixture(user)

	for _, query := range []string{"", "   ", "\t"} {
		results, err := f.composer.Search(context.Background(), f.userID, query, search.ScopeAll)
		require.NoError(t, err)

		assert.Empty(t, results.Notes)
		assert.Empty(t, results.Bookmarks)
		assert.Empty(t, results.Comments)
		assert.Empty(t, results.Favorites)
	}

	assert.Zero(t, f.notes.Calls)
	assert.Zero(t, f.bookmarks.Calls)
	assert.Zero(t, f.comments.Calls)
	assert.Zero(t, f.favorites.Calls)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	user := owner()
	f := newFixture(user)
	ctx := context.Background()

	require.NoError(t, f.notes.Insert(ctx, &models.Note{UserID: f.userID, Title: "Project Roadmap", Content: "q2 plan"}))
	require.NoError(t, f.bookmarks.Insert(ctx, &models.Bookmark{UserID: f.userID, Title: "Roadmap tools", URL: "https://example.com"}))

	for _, query := range []string{"roadmap", "ROADMAP", "RoAdMaP"} {
		results, err := f.composer.Search(ctx, f.userID, query, search.ScopeAll)
		require.NoError(t, err)
		assert.Len(t, results.Notes, 1, "query %q", query)
		assert.Len(t, results.Bookmarks, 1, "query %q", query)
	}

	results, err := f.composer.Search(ctx, f.userID, "zzz", search.ScopeAll)
	require.NoError(t, err)
	assert.Empty(t, results.Notes)
	assert.Empty(t, results.Bookmarks)
}

func TestScopeRestrictsLists(t *testing.T) {
	user := owner()
	f := newFixture(user)
	ctx := context.Background()

	require.NoError(t, f.notes.Insert(ctx, &models.Note{UserID: f.userID, Title: "go notes", Content: "x"}))
	require.NoError(t, f.bookmarks.Insert(ctx, &models.Bookmark{UserID: f.userID, Title: "go links", URL: "https://go.dev"}))

	results, err := f.composer.Search(ctx, f.userID, "go", search.ScopeNotes)
	require.NoError(t, err)

	assert.Len(t, results.Notes, 1)
	// Out-of-scope lists are present but empty, never nil.
	require.NotNil(t, results.Bookmarks)
	assert.Empty(t, results.Bookmarks)
	require.NotNil(t, results.Comments)
	require.NotNil(t, results.Favorites)
}

func TestCommentHitsCarryAuthorName(t *testing.T) {
	user := owner()
	f := newFixture(user)
	ctx := context.Background()

	require.NoError(t, f.comments.Insert(ctx, &models.Comment{
		UserID:        f.userID,
		ReferenceID:   uuid.New(),
		ReferenceType: models.ReferenceBookmark,
		Text:          "great read",
	}))

	results, err := f.composer.Search(ctx, f.userID, "great", search.ScopeComments)
	require.NoError(t, err)

	require.Len(t, results.Comments, 1)
	assert.Equal(t, "Ada", results.Comments[0].Author)
}

func TestFavoritesScopeMatchesOnlyFavoritedItems(t *testing.T) {
	user := owner()
	f := newFixture(user)
	ctx := context.Background()

	favNote := models.Note{UserID: f.userID, Title: "go patterns", Content: "x"}
	plainNote := models.Note{UserID: f.userID, Title: "go basics", Content: "x"}
	favBookmark := models.Bookmark{UserID: f.userID, Title: "go blog", URL: "https://go.dev/blog"}
	require.NoError(t, f.notes.Insert(ctx, &favNote))
	require.NoError(t, f.notes.Insert(ctx, &plainNote))
	require.NoError(t, f.bookmarks.Insert(ctx, &favBookmark))

	require.NoError(t, f.favorites.Insert(ctx, &models.Favorite{UserID: f.userID, ItemID: favNote.ID, ItemType: models.ItemNote}))
	require.NoError(t, f.favorites.Insert(ctx, &models.Favorite{UserID: f.userID, ItemID: favBookmark.ID, ItemType: models.ItemBookmark}))

	results, err := f.composer.Search(ctx, f.userID, "go", search.ScopeFavorites)
	require.NoError(t, err)

	require.Len(t, results.Favorites, 2)
	// Notes precede bookmarks in the merged list.
	assert.Equal(t, "note", results.Favorites[0].Kind)
	require.NotNil(t, results.Favorites[0].Note)
	assert.Equal(t, favNote.ID, results.Favorites[0].Note.ID)
	assert.Equal(t, "bookmark", results.Favorites[1].Kind)
	require.NotNil(t, results.Favorites[1].Bookmark)
}

func TestSearchNeverLeaksOtherUsers(t *testing.T) {
	user := owner()
	f := newFixture(user)
	ctx := context.Background()

	require.NoError(t, f.notes.Insert(ctx, &models.Note{UserID: uuid.New(), Title: "shared secret", Content: "x"}))

	results, err := f.composer.Search(ctx, f.userID, "secret", search.ScopeAll)
	require.NoError(t, err)
	assert.Empty(t, results.Notes)
}

func TestSearchResultLimit(t *testing.T) {
	user := owner()
	f := newFixture(user)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, f.notes.Insert(ctx, &models.Note{
			UserID:  f.userID,
			Title:   fmt.Sprintf("meeting notes %d", i),
			Content: "x",
		}))
	}

	results, err := f.composer.Search(ctx, f.userID, "meeting", search.ScopeNotes)
	require.NoError(t, err)
	assert.Len(t, results.Notes, 20)
}
