// Package store implements owner-scoped persistence for the four entity
// collections. Every operation is filtered by the owning user; a miss and a
// cross-user hit are indistinguishable to callers.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports an entity that is absent or not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a uniqueness conflict.
	ErrDuplicate = errors.New("record already exists")
)

// Untagged is the bucket key for entities whose grouping field is empty.
const Untagged = "Untagged"

// Sort selects the ordering of a Find.
type Sort int

const (
	SortNone Sort = iota
	SortUpdatedDesc
	SortCreatedDesc
	SortCreatedAsc
)

// Query narrows a collection read. The zero value matches everything the
// caller owns.
type Query struct {
	// Search is a case-insensitive substring matched against the
	// collection's searchable fields, OR across fields.
	Search string
	// IDs restricts results to the given entity ids when non-empty.
	IDs []uuid.UUID
	// CreatedAfter keeps entities created at or after the given instant.
	CreatedAfter time.Time
	Sort         Sort
	Limit        int
}

// GroupFunc extracts the grouping keys of an entity. An entity may belong to
// several buckets (one per tag); an empty result lands in the Untagged bucket.
type GroupFunc[T any] func(T) []string

// Grouped is one bucket of a GroupCount, in first-seen order.
type Grouped struct {
	Key   string
	Count int
}

// Collection is the generic owner-scoped store contract for notes, bookmarks,
// comments and activities.
type Collection[T any] interface {
	Find(ctx context.Context, userID uuid.UUID, q Query) ([]T, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*T, error)
	Count(ctx context.Context, userID uuid.UUID, q Query) (int64, error)
	Insert(ctx context.Context, entity *T) error
	Update(ctx context.Context, userID, id uuid.UUID, updates map[string]interface{}) (*T, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	GroupCount(ctx context.Context, userID uuid.UUID, q Query, key GroupFunc[T]) ([]Grouped, error)
}

// GroupItems buckets entities in memory, preserving first-seen order so that
// equal counts keep insertion order downstream.
func GroupItems[T any](items []T, key GroupFunc[T]) []Grouped {
	index := make(map[string]int)
	out := make([]Grouped, 0)
	add := func(k string) {
		if i, ok := index[k]; ok {
			out[i].Count++
			return
		}
		index[k] = len(out)
		out = append(out, Grouped{Key: k, Count: 1})
	}
	for _, item := range items {
		keys := key(item)
		if len(keys) == 0 {
			add(Untagged)
			continue
		}
		for _, k := range keys {
			add(k)
		}
	}
	return out
}
