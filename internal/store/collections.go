package store

import (
	"github.com/mnuddindev/secondbrain/internal/models"
	"gorm.io/gorm"
)

// Stores bundles the collections the components read from. Search clauses
// define each collection's searchable fields; tags are jsonb, matched on
// their text form.
type Stores struct {
	Notes      Collection[models.Note]
	Bookmarks  Collection[models.Bookmark]
	Comments   Collection[models.Comment]
	Activities Collection[models.Activity]
	Users      *Users
	Favorites  *Favorites
}

func NewStores(gormDB *gorm.DB) *Stores {
	return &Stores{
		Notes: NewStore[models.Note](gormDB,
			WithSearch("(title ILIKE @q OR content ILIKE @q OR tags::text ILIKE @q)")),
		Bookmarks: NewStore[models.Bookmark](gormDB,
			WithSearch("(title ILIKE @q OR description ILIKE @q OR url ILIKE @q OR tags::text ILIKE @q)")),
		Comments: NewStore[models.Comment](gormDB,
			WithSearch("(text ILIKE @q)")),
		Activities: NewStore[models.Activity](gormDB),
		Users:      NewUsers(gormDB),
		Favorites:  NewFavorites(gormDB),
	}
}

// Models lists every persisted entity for migration.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Note{},
		&models.Bookmark{},
		&models.Comment{},
		&models.Activity{},
		&models.Favorite{},
	}
}
