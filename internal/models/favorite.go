package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemType string

const (
	ItemNote     ItemType = "Note"
	ItemBookmark ItemType = "Bookmark"
)

// Favorite is the join-table representation of favorite state. It is the
// single source of truth; notes and bookmarks carry no favorite flag.
type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_item" json:"user_id"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_item" json:"item_id"`
	ItemType ItemType  `gorm:"size:20;not null" json:"item_type" validate:"required,oneof=Note Bookmark"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
