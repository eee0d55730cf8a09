// Package storetest provides in-memory store fakes for component tests. The
// fakes count store accesses so tests can assert that an operation never
// touched storage.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
)

// Hooks adapts the generic fake to a concrete entity type.
type Hooks[T any] struct {
	ID      func(*T) uuid.UUID
	SetID   func(*T, uuid.UUID)
	Owner   func(*T) uuid.UUID
	Created func(*T) time.Time
	Updated func(*T) time.Time
	Stamp   func(*T, time.Time)
	Match   func(*T, string) bool
	Apply   func(*T, map[string]interface{})
}

// Collection is an in-memory store.Collection.
type Collection[T any] struct {
	mu    sync.Mutex
	items []T
	hooks Hooks[T]

	// Calls counts every store access.
	Calls int
}

func New[T any](hooks Hooks[T]) *Collection[T] {
	return &Collection[T]{hooks: hooks}
}

func (c *Collection[T]) filter(userID uuid.UUID, q store.Query) []T {
	idSet := make(map[uuid.UUID]bool, len(q.IDs))
	for _, id := range q.IDs {
		idSet[id] = true
	}

	out := make([]T, 0)
	for i := range c.items {
		item := c.items[i]
		if c.hooks.Owner(&item) != userID {
			continue
		}
		if q.Search != "" && !c.hooks.Match(&item, strings.ToLower(q.Search)) {
			continue
		}
		if len(q.IDs) > 0 && !idSet[c.hooks.ID(&item)] {
			continue
		}
		if !q.CreatedAfter.IsZero() && c.hooks.Created(&item).Before(q.CreatedAfter) {
			continue
		}
		out = append(out, item)
	}

	switch q.Sort {
	case store.SortUpdatedDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return c.hooks.Updated(&out[i]).After(c.hooks.Updated(&out[j]))
		})
	case store.SortCreatedDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return c.hooks.Created(&out[i]).After(c.hooks.Created(&out[j]))
		})
	case store.SortCreatedAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return c.hooks.Created(&out[i]).Before(c.hooks.Created(&out[j]))
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (c *Collection[T]) Find(ctx context.Context, userID uuid.UUID, q store.Query) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	return c.filter(userID, q), nil
}

func (c *Collection[T]) Get(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	for i := range c.items {
		if c.hooks.ID(&c.items[i]) == id && c.hooks.Owner(&c.items[i]) == userID {
			item := c.items[i]
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *Collection[T]) Count(ctx context.Context, userID uuid.UUID, q store.Query) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	return int64(len(c.filter(userID, q))), nil
}

func (c *Collection[T]) Insert(ctx context.Context, entity *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	if c.hooks.ID(entity) == uuid.Nil {
		c.hooks.SetID(entity, uuid.New())
	}
	if c.hooks.Stamp != nil {
		c.hooks.Stamp(entity, time.Now())
	}
	c.items = append(c.items, *entity)
	return nil
}

func (c *Collection[T]) Update(ctx context.Context, userID, id uuid.UUID, updates map[string]interface{}) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	for i := range c.items {
		if c.hooks.ID(&c.items[i]) == id && c.hooks.Owner(&c.items[i]) == userID {
			c.hooks.Apply(&c.items[i], updates)
			item := c.items[i]
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *Collection[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	for i := range c.items {
		if c.hooks.ID(&c.items[i]) == id && c.hooks.Owner(&c.items[i]) == userID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (c *Collection[T]) GroupCount(ctx context.Context, userID uuid.UUID, q store.Query, key store.GroupFunc[T]) ([]store.Grouped, error) {
	items, err := c.Find(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return store.GroupItems(items, key), nil
}

// All returns a copy of every stored item, for assertions.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func matchTags(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Notes returns a fake configured for models.Note.
func Notes() *Collection[models.Note] {
	return New(Hooks[models.Note]{
		ID:      func(n *models.Note) uuid.UUID { return n.ID },
		SetID:   func(n *models.Note, id uuid.UUID) { n.ID = id },
		Owner:   func(n *models.Note) uuid.UUID { return n.UserID },
		Created: func(n *models.Note) time.Time { return n.CreatedAt },
		Updated: func(n *models.Note) time.Time { return n.UpdatedAt },
		Stamp: func(n *models.Note, now time.Time) {
			if n.CreatedAt.IsZero() {
				n.CreatedAt = now
			}
			if n.UpdatedAt.IsZero() {
				n.UpdatedAt = now
			}
		},
		Match: func(n *models.Note, q string) bool {
			return strings.Contains(strings.ToLower(n.Title), q) ||
				strings.Contains(strings.ToLower(n.Content), q) ||
				matchTags(n.Tags, q)
		},
		Apply: func(n *models.Note, updates map[string]interface{}) {
			if v, ok := updates["title"].(string); ok {
				n.Title = v
			}
			if v, ok := updates["content"].(string); ok {
				n.Content = v
			}
			if v, ok := updates["tags"].([]string); ok {
				n.Tags = v
			}
			n.UpdatedAt = time.Now()
		},
	})
}

// Bookmarks returns a fake configured for models.Bookmark.
func Bookmarks() *Collection[models.Bookmark] {
	return New(Hooks[models.Bookmark]{
		ID:      func(b *models.Bookmark) uuid.UUID { return b.ID },
		SetID:   func(b *models.Bookmark, id uuid.UUID) { b.ID = id },
		Owner:   func(b *models.Bookmark) uuid.UUID { return b.UserID },
		Created: func(b *models.Bookmark) time.Time { return b.CreatedAt },
		Updated: func(b *models.Bookmark) time.Time { return b.UpdatedAt },
		Stamp: func(b *models.Bookmark, now time.Time) {
			if b.CreatedAt.IsZero() {
				b.CreatedAt = now
			}
			if b.UpdatedAt.IsZero() {
				b.UpdatedAt = now
			}
		},
		Match: func(b *models.Bookmark, q string) bool {
			return strings.Contains(strings.ToLower(b.Title), q) ||
				strings.Contains(strings.ToLower(b.Description), q) ||
				strings.Contains(strings.ToLower(b.URL), q) ||
				matchTags(b.Tags, q)
		},
		Apply: func(b *models.Bookmark, updates map[string]interface{}) {
			if v, ok := updates["title"].(string); ok {
				b.Title = v
			}
			if v, ok := updates["url"].(string); ok {
				b.URL = v
			}
			if v, ok := updates["description"].(string); ok {
				b.Description = v
			}
			if v, ok := updates["tags"].([]string); ok {
				b.Tags = v
			}
			b.UpdatedAt = time.Now()
		},
	})
}

// Comments returns a fake configured for models.Comment.
func Comments() *Collection[models.Comment] {
	return New(Hooks[models.Comment]{
		ID:      func(c *models.Comment) uuid.UUID { return c.ID },
		SetID:   func(c *models.Comment, id uuid.UUID) { c.ID = id },
		Owner:   func(c *models.Comment) uuid.UUID { return c.UserID },
		Created: func(c *models.Comment) time.Time { return c.CreatedAt },
		Updated: func(c *models.Comment) time.Time { return c.CreatedAt },
		Stamp: func(c *models.Comment, now time.Time) {
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
		},
		Match: func(c *models.Comment, q string) bool {
			return strings.Contains(strings.ToLower(c.Text), q)
		},
	})
}

// Activities returns a fake configured for models.Activity.
func Activities() *Collection[models.Activity] {
	return New(Hooks[models.Activity]{
		ID:      func(a *models.Activity) uuid.UUID { return a.ID },
		SetID:   func(a *models.Activity, id uuid.UUID) { a.ID = id },
		Owner:   func(a *models.Activity) uuid.UUID { return a.UserID },
		Created: func(a *models.Activity) time.Time { return a.CreatedAt },
		Updated: func(a *models.Activity) time.Time { return a.CreatedAt },
		Stamp: func(a *models.Activity, now time.Time) {
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now
			}
		},
		Match: func(a *models.Activity, q string) bool { return false },
	})
}

// Favorites is an in-memory store.FavoriteStore.
type Favorites struct {
	mu    sync.Mutex
	items []models.Favorite

	Calls int
}

func NewFavorites() *Favorites {
	return &Favorites{}
}

func (f *Favorites) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	out := make([]models.Favorite, 0)
	for _, fav := range f.items {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *Favorites) ByItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ItemID == itemID {
			fav := f.items[i]
			return &fav, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *Favorites) Insert(ctx context.Context, favorite *models.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}
	f.items = append(f.items, *favorite)
	return nil
}

func (f *Favorites) Delete(ctx context.Context, userID, favoriteID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ID == favoriteID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *Favorites) ItemIDs(ctx context.Context, userID uuid.UUID, itemType models.ItemType) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	ids := make([]uuid.UUID, 0)
	for _, fav := range f.items {
		if fav.UserID == userID && fav.ItemType == itemType {
			ids = append(ids, fav.ItemID)
		}
	}
	return ids, nil
}

func (f *Favorites) CountByType(ctx context.Context, userID uuid.UUID, itemType models.ItemType) (int64, error) {
	ids, err := f.ItemIDs(ctx, userID, itemType)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

// Users is an in-memory store.UserSource.
type Users struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func NewUsers(users ...models.User) *Users {
	u := &Users{users: make(map[uuid.UUID]models.User)}
	for _, user := range users {
		u.users[user.ID] = user
	}
	return u
}

func (u *Users) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user, ok := u.users[id]; ok {
		return &user, nil
	}
	return nil, store.ErrNotFound
}
