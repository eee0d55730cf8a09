package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type settings struct {
	searchExpr string
}

// Option configures a GORM-backed collection.
type Option func(*settings)

// WithSearch sets the SQL boolean expression used for substring search. The
// query value is bound to the @q named argument, already wrapped in %...%.
func WithSearch(expr string) Option {
	return func(s *settings) { s.searchExpr = expr }
}

// Store is the GORM-backed Collection implementation.
type Store[T any] struct {
	db       *gorm.DB
	settings settings
}

func NewStore[T any](gormDB *gorm.DB, opts ...Option) *Store[T] {
	s := &Store[T]{db: gormDB}
	for _, opt := range opts {
		opt(&s.settings)
	}
	return s
}

func (s *Store[T]) scoped(ctx context.Context, userID uuid.UUID, q Query) *gorm.DB {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if q.Search != "" && s.settings.searchExpr != "" {
		tx = tx.Where(s.settings.searchExpr, sql.Named("q", "%"+q.Search+"%"))
	}
	if len(q.IDs) > 0 {
		tx = tx.Where("id IN ?", q.IDs)
	}
	if !q.CreatedAfter.IsZero() {
		tx = tx.Where("created_at >= ?", q.CreatedAfter)
	}
	return tx
}

func (s *Store[T]) Find(ctx context.Context, userID uuid.UUID, q Query) ([]T, error) {
	tx := s.scoped(ctx, userID, q)
	switch q.Sort {
	case SortUpdatedDesc:
		tx = tx.Order("updated_at DESC")
	case SortCreatedDesc:
		tx = tx.Order("created_at DESC")
	case SortCreatedAsc:
		tx = tx.Order("created_at ASC")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	var out []T
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (s *Store[T]) Count(ctx context.Context, userID uuid.UUID, q Query) (int64, error) {
	var count int64
	if err := s.scoped(ctx, userID, q).Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store[T]) Insert(ctx context.Context, entity *T) error {
	return s.db.WithContext(ctx).Create(entity).Error
}

// Update applies the given column updates to the caller's entity and returns
// the fresh row. Last write wins; there is no version check.
func (s *Store[T]) Update(ctx context.Context, userID, id uuid.UUID, updates map[string]interface{}) (*T, error) {
	tx := s.db.WithContext(ctx).Model(new(T)).Where("user_id = ? AND id = ?", userID, id).Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *Store[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(new(T))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GroupCount fetches the matching rows and buckets them in memory; tags live
// in a jsonb column, so counting happens after the owner-scoped fetch.
func (s *Store[T]) GroupCount(ctx context.Context, userID uuid.UUID, q Query, key GroupFunc[T]) ([]Grouped, error) {
	items, err := s.Find(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return GroupItems(items, key), nil
}
