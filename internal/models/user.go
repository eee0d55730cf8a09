// Package models defines the persisted entities of the SecondBrain API.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required,notblank,max=100"`
	Email     string    `gorm:"size:100;not null;uniqueIndex" json:"email" validate:"required,email,max=100"`
	Password  string    `gorm:"size:255;not null" json:"-" validate:"required,min=6"`
	AvatarURL string    `gorm:"size:255" json:"avatar" validate:"omitempty,url"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
