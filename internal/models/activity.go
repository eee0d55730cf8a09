package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityNoteCreated   ActivityType = "note_created"
	ActivityBookmarkAdded ActivityType = "bookmark_added"
	ActivityCommentPosted ActivityType = "comment_posted"
	ActivityItemFavorited ActivityType = "item_favorited"
)

// Activity is an append-only record produced as a side effect of mutations.
// It is only ever read for display, never for authorization.
type Activity struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_activity_user" json:"user_id"`
	Type        ActivityType `gorm:"size:30;not null" json:"type" validate:"required,oneof=note_created bookmark_added comment_posted item_favorited"`
	Description string       `gorm:"size:255;not null" json:"description" validate:"required"`
	ResourceID  *uuid.UUID   `gorm:"type:uuid" json:"resource_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
