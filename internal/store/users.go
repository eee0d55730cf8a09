package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/models"
	"gorm.io/gorm"
)

// UserSource is the read side of the user store consumed by middleware and
// the search composer's author enrichment.
type UserSource interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Users persists accounts. Unlike the entity collections, users are looked up
// by credentials rather than owner.
type Users struct {
	db *gorm.DB
}

func NewUsers(gormDB *gorm.DB) *Users {
	return &Users{db: gormDB}
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (u *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
