package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_note_user" json:"user_id"`
	Title   string    `gorm:"size:200;not null" json:"title" validate:"required,notblank,max=200"`
	Content string    `gorm:"type:text;not null" json:"content" validate:"required,notblank,max=10000"`
	Tags    []string  `gorm:"serializer:json;type:jsonb" json:"tags"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
