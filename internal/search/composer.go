// Package search fans a single query string out across the entity
// collections and merges the results into one fixed four-key envelope.
package search

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// Scope selects which collections a search touches.
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeNotes     Scope = "notes"
	ScopeBookmarks Scope = "bookmarks"
	ScopeComments  Scope = "comments"
	ScopeFavorites Scope = "favorites"
)

// ParseScope maps the type query parameter to a Scope. Empty means all.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeNotes, ScopeBookmarks, ScopeComments, ScopeFavorites:
		return Scope(s), nil
	default:
		return "", utils.NewError(utils.ErrBadRequest.Code, "Invalid search type")
	}
}

const (
	resultLimit         = 20
	favoriteResultLimit = 10
)

// CommentHit is a comment result enriched with its author's display name.
type CommentHit struct {
	models.Comment
	Author string `json:"author"`
}

// FavoriteHit tags a matching favorited item with its source kind. Notes
// precede bookmarks; each sub-list keeps its own ordering.
type FavoriteHit struct {
	Kind     string           `json:"kind"`
	Note     *models.Note     `json:"note,omitempty"`
	Bookmark *models.Bookmark `json:"bookmark,omitempty"`
}

// Results always carries all four keys; lists outside the requested scope are
// empty, never omitted.
type Results struct {
	Notes     []models.Note     `json:"notes"`
	Bookmarks []models.Bookmark `json:"bookmarks"`
	Comments  []CommentHit      `json:"comments"`
	Favorites []FavoriteHit     `json:"favorites"`
}

func emptyResults() *Results {
	return &Results{
		Notes:     []models.Note{},
		Bookmarks: []models.Bookmark{},
		Comments:  []CommentHit{},
		Favorites: []FavoriteHit{},
	}
}

// Composer runs the per-collection substring matches concurrently.
type Composer struct {
	notes     store.Collection[models.Note]
	bookmarks store.Collection[models.Bookmark]
	comments  store.Collection[models.Comment]
	users     store.UserSource
	favorites store.FavoriteStore
}

func NewComposer(
	notes store.Collection[models.Note],
	bookmarks store.Collection[models.Bookmark],
	comments store.Collection[models.Comment],
	users store.UserSource,
	favorites store.FavoriteStore,
) *Composer {
	return &Composer{
		notes:     notes,
		bookmarks: bookmarks,
		comments:  comments,
		users:     users,
		favorites: favorites,
	}
}

// Search returns the unified result envelope. A blank query returns the four
// empty lists without touching storage.
func (s *Composer) Search(ctx context.Context, userID uuid.UUID, query string, scope Scope) (*Results, error) {
	results := emptyResults()
	if strings.TrimSpace(query) == "" {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	if scope == ScopeAll || scope == ScopeNotes {
		g.Go(func() error {
			notes, err := s.notes.Find(gctx, userID, store.Query{
				Search: query,
				Sort:   store.SortUpdatedDesc,
				Limit:  resultLimit,
			})
			if err != nil {
				return err
			}
			results.Notes = notes
			return nil
		})
	}

	if scope == ScopeAll || scope == ScopeBookmarks {
		g.Go(func() error {
			bookmarks, err := s.bookmarks.Find(gctx, userID, store.Query{
				Search: query,
				Sort:   store.SortUpdatedDesc,
				Limit:  resultLimit,
			})
			if err != nil {
				return err
			}
			results.Bookmarks = bookmarks
			return nil
		})
	}

	if scope == ScopeAll || scope == ScopeComments {
		g.Go(func() error {
			hits, err := s.searchComments(gctx, userID, query)
			if err != nil {
				return err
			}
			results.Comments = hits
			return nil
		})
	}

	if scope == ScopeAll || scope == ScopeFavorites {
		g.Go(func() error {
			hits, err := s.searchFavorites(gctx, userID, query)
			if err != nil {
				return err
			}
			results.Favorites = hits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// searchComments matches comment text and enriches each hit with the
// author's display name. Comments are owner-scoped, so the author is the
// caller; the lookup is read-only.
func (s *Composer) searchComments(ctx context.Context, userID uuid.UUID, query string) ([]CommentHit, error) {
	comments, err := s.comments.Find(ctx, userID, store.Query{
		Search: query,
		Sort:   store.SortCreatedDesc,
		Limit:  resultLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []CommentHit{}, nil
	}

	author := ""
	if user, err := s.users.ByID(ctx, userID); err == nil {
		author = user.Name
	}

	hits := make([]CommentHit, 0, len(comments))
	for _, c := range comments {
		hits = append(hits, CommentHit{Comment: c, Author: author})
	}
	return hits, nil
}

// searchFavorites re-runs the note and bookmark matches restricted to the
// favorited id sets, notes first.
func (s *Composer) searchFavorites(ctx context.Context, userID uuid.UUID, query string) ([]FavoriteHit, error) {
	var noteHits []models.Note
	var bookmarkHits []models.Bookmark

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := s.favorites.ItemIDs(gctx, userID, models.ItemNote)
		if err != nil || len(ids) == 0 {
			return err
		}
		noteHits, err = s.notes.Find(gctx, userID, store.Query{
			Search: query,
			IDs:    ids,
			Sort:   store.SortUpdatedDesc,
			Limit:  favoriteResultLimit,
		})
		return err
	})
	g.Go(func() error {
		ids, err := s.favorites.ItemIDs(gctx, userID, models.ItemBookmark)
		if err != nil || len(ids) == 0 {
			return err
		}
		bookmarkHits, err = s.bookmarks.Find(gctx, userID, store.Query{
			Search: query,
			IDs:    ids,
			Sort:   store.SortUpdatedDesc,
			Limit:  favoriteResultLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := make([]FavoriteHit, 0, len(noteHits)+len(bookmarkHits))
	for i := range noteHits {
		hits = append(hits, FavoriteHit{Kind: "note", Note: &noteHits[i]})
	}
	for i := range bookmarkHits {
		hits = append(hits, FavoriteHit{Kind: "bookmark", Bookmark: &bookmarkHits[i]})
	}
	return hits, nil
}
