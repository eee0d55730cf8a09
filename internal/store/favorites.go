package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"gorm.io/gorm"
)

// FavoriteStore is the join-table store behind the favorites projector, the
// search composer's favorites sub-scope and the analytics favorite counts.
type FavoriteStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	ByItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Favorite, error)
	Insert(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, favoriteID uuid.UUID) error
	ItemIDs(ctx context.Context, userID uuid.UUID, itemType models.ItemType) ([]uuid.UUID, error)
	CountByType(ctx context.Context, userID uuid.UUID, itemType models.ItemType) (int64, error)
}

// Favorites is the GORM-backed FavoriteStore.
type Favorites struct {
	db *gorm.DB
}

func NewFavorites(gormDB *gorm.DB) *Favorites {
	return &Favorites{db: gormDB}
}

// List returns the caller's favorites, most recently created first.
func (f *Favorites) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var out []models.Favorite
	err := f.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Favorites) ByItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Favorite, error) {
	var favorite models.Favorite
	err := f.db.WithContext(ctx).Where("user_id = ? AND item_id = ?", userID, itemID).First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (f *Favorites) Insert(ctx context.Context, favorite *models.Favorite) error {
	return f.db.WithContext(ctx).Create(favorite).Error
}

// Delete removes a favorite by its own id. Removing a favorite that does not
// exist is not an error.
func (f *Favorites) Delete(ctx context.Context, userID, favoriteID uuid.UUID) error {
	return f.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, favoriteID).
		Delete(&models.Favorite{}).Error
}

func (f *Favorites) ItemIDs(ctx context.Context, userID uuid.UUID, itemType models.ItemType) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := f.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (f *Favorites) CountByType(ctx context.Context, userID uuid.UUID, itemType models.ItemType) (int64, error) {
	var count int64
	err := f.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
