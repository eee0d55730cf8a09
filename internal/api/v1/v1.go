// Package v1 contains the HTTP handlers of the SecondBrain API. Every
// handler receives its dependencies through the API struct; there is no
// package-level state.
package v1

import (
	"github.com/mnuddindev/secondbrain/internal/activity"
	"github.com/mnuddindev/secondbrain/internal/analytics"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/config"
	"github.com/mnuddindev/secondbrain/internal/db"
	"github.com/mnuddindev/secondbrain/internal/favorites"
	"github.com/mnuddindev/secondbrain/internal/search"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/logger"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

type API struct {
	Cfg       *config.Config
	Redis     *db.RedisClient
	Logger    *logger.Logger
	Validator *utils.Validator
	JWT       *auth.JWT
	Stores    *store.Stores
	Engine    *analytics.Engine
	Composer  *search.Composer
	Projector *favorites.Projector
	Recorder  *activity.Recorder
}

func NewAPI(cfg *config.Config, rclient *db.RedisClient, log *logger.Logger, stores *store.Stores) *API {
	recorder := activity.NewRecorder(stores.Activities, log)
	return &API{
		Cfg:       cfg,
		Redis:     rclient,
		Logger:    log,
		Validator: utils.NewValidator(),
		JWT:       auth.NewJWT(cfg.JWTSecret),
		Stores:    stores,
		Engine:    analytics.NewEngine(stores.Notes, stores.Bookmarks, stores.Comments, stores.Activities, stores.Favorites),
		Composer:  search.NewComposer(stores.Notes, stores.Bookmarks, stores.Comments, stores.Users, stores.Favorites),
		Projector: favorites.NewProjector(stores.Favorites, stores.Notes, stores.Bookmarks, recorder),
		Recorder:  recorder,
	}
}
