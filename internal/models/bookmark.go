package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bookmark struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_bookmark_user" json:"user_id"`
	Title       string    `gorm:"size:200;not null" json:"title" validate:"required,notblank,max=200"`
	URL         string    `gorm:"size:2048;not null" json:"url" validate:"required,notblank,weburl"`
	Description string    `gorm:"type:text" json:"description" validate:"omitempty,max=2000"`
	Tags        []string  `gorm:"serializer:json;type:jsonb" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
