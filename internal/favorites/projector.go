// Package favorites derives the unified favorites view from the join table
// and keeps add/remove/list consistent with it.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// ActivityRecorder is the write-side hook fired after a successful add.
type ActivityRecorder interface {
	Record(userID uuid.UUID, typ models.ActivityType, description string, resourceID uuid.UUID)
}

// FavoriteView is a favorite row joined with its fully populated source
// entity.
type FavoriteView struct {
	ID        uuid.UUID        `json:"id"`
	ItemID    uuid.UUID        `json:"item_id"`
	ItemType  models.ItemType  `json:"item_type"`
	CreatedAt time.Time        `json:"created_at"`
	Note      *models.Note     `json:"note,omitempty"`
	Bookmark  *models.Bookmark `json:"bookmark,omitempty"`
}

// Projector lists, adds and removes favorites over the join-table model.
type Projector struct {
	favorites store.FavoriteStore
	notes     store.Collection[models.Note]
	bookmarks store.Collection[models.Bookmark]
	recorder  ActivityRecorder
}

func NewProjector(
	favorites store.FavoriteStore,
	notes store.Collection[models.Note],
	bookmarks store.Collection[models.Bookmark],
	recorder ActivityRecorder,
) *Projector {
	return &Projector{
		favorites: favorites,
		notes:     notes,
		bookmarks: bookmarks,
		recorder:  recorder,
	}
}

// List returns the caller's favorites, most recently favorited first, each
// joined with its source entity. Favorites whose source has since been
// deleted are skipped.
func (p *Projector) List(ctx context.Context, userID uuid.UUID) ([]FavoriteView, error) {
	favs, err := p.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return []FavoriteView{}, nil
	}

	noteIDs := make([]uuid.UUID, 0)
	bookmarkIDs := make([]uuid.UUID, 0)
	for _, f := range favs {
		switch f.ItemType {
		case models.ItemNote:
			noteIDs = append(noteIDs, f.ItemID)
		case models.ItemBookmark:
			bookmarkIDs = append(bookmarkIDs, f.ItemID)
		}
	}

	notesByID := make(map[uuid.UUID]*models.Note)
	bookmarksByID := make(map[uuid.UUID]*models.Bookmark)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(noteIDs) == 0 {
			return nil
		}
		notes, err := p.notes.Find(gctx, userID, store.Query{IDs: noteIDs})
		if err != nil {
			return err
		}
		for i := range notes {
			notesByID[notes[i].ID] = &notes[i]
		}
		return nil
	})
	g.Go(func() error {
		if len(bookmarkIDs) == 0 {
			return nil
		}
		bookmarks, err := p.bookmarks.Find(gctx, userID, store.Query{IDs: bookmarkIDs})
		if err != nil {
			return err
		}
		for i := range bookmarks {
			bookmarksByID[bookmarks[i].ID] = &bookmarks[i]
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]FavoriteView, 0, len(favs))
	for _, f := range favs {
		view := FavoriteView{
			ID:        f.ID,
			ItemID:    f.ItemID,
			ItemType:  f.ItemType,
			CreatedAt: f.CreatedAt,
		}
		switch f.ItemType {
		case models.ItemNote:
			note, ok := notesByID[f.ItemID]
			if !ok {
				continue
			}
			view.Note = note
		case models.ItemBookmark:
			bookmark, ok := bookmarksByID[f.ItemID]
			if !ok {
				continue
			}
			view.Bookmark = bookmark
		}
		views = append(views, view)
	}
	return views, nil
}

// Add favorites an item the caller owns. Favoriting an already-favorited
// item is an explicit conflict, not a silent no-op.
func (p *Projector) Add(ctx context.Context, userID, itemID uuid.UUID, itemType models.ItemType) (*FavoriteView, error) {
	view := FavoriteView{ItemID: itemID, ItemType: itemType}
	var title string

	switch itemType {
	case models.ItemNote:
		note, err := p.notes.Get(ctx, userID, itemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, utils.NewError(utils.ErrNotFound.Code, "Item not found")
			}
			return nil, err
		}
		view.Note = note
		title = note.Title
	case models.ItemBookmark:
		bookmark, err := p.bookmarks.Get(ctx, userID, itemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, utils.NewError(utils.ErrNotFound.Code, "Item not found")
			}
			return nil, err
		}
		view.Bookmark = bookmark
		title = bookmark.Title
	default:
		return nil, utils.NewError(utils.ErrBadRequest.Code, "Invalid item type")
	}

	if _, err := p.favorites.ByItem(ctx, userID, itemID); err == nil {
		return nil, utils.NewError(utils.ErrBadRequest.Code, "Already favorited")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	favorite := models.Favorite{
		UserID:   userID,
		ItemID:   itemID,
		ItemType: itemType,
	}
	if err := p.favorites.Insert(ctx, &favorite); err != nil {
		return nil, err
	}

	p.recorder.Record(userID, models.ActivityItemFavorited, fmt.Sprintf("Favorited: %s", title), itemID)

	view.ID = favorite.ID
	view.CreatedAt = favorite.CreatedAt
	return &view, nil
}

// Remove deletes a favorite by its id. Removing one that does not exist
// succeeds silently.
func (p *Projector) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	return p.favorites.Delete(ctx, userID, favoriteID)
}
