package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reference kinds a comment can target.
const (
	ReferenceNote     = "note"
	ReferenceBookmark = "bookmark"
)

// Comment is immutable after creation. There is no update or delete path.
type Comment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_user" json:"user_id"`
	ReferenceID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_reference" json:"reference_id"`
	ReferenceType string    `gorm:"size:20;not null;default:'bookmark'" json:"reference_type" validate:"omitempty,oneof=note bookmark"`
	Text          string    `gorm:"size:1000;not null" json:"text" validate:"required,notblank,max=1000"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
