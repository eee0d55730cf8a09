package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	v1 "github.com/mnuddindev/secondbrain/internal/api/v1"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/pkg/logger"
)

// NewRoutes installs the middleware stack and mounts the API under /api.
// Only /health and the register/login pair are reachable without a token.
func NewRoutes(app *fiber.App, api *v1.API, log *logger.Logger) {
	app.Use(
		logger.SetupLogger(log),
		recover.New(),
		cors.New(
			cors.Config{
				AllowOrigins:     api.Cfg.AllowOrigins,
				AllowCredentials: true,
				AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			},
		),
		compress.New(
			compress.Config{
				Level: compress.LevelBestCompression,
			},
		),
		limiter.New(
			limiter.Config{
				Expiration: 1 * time.Minute,
				Max:        100,
				KeyGenerator: func(c *fiber.Ctx) string {
					return c.IP()
				},
			},
		),
	)
	app.Use(log.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	root := app.Group("/api")

	root.Post("/auth/register", api.Register)
	root.Post("/auth/login", api.Login)

	protected := root.Group("", auth.Protected(auth.Options{
		JWT:     api.JWT,
		Users:   api.Stores.Users,
		Rclient: api.Redis,
		Logger:  log,
	}))

	protected.Get("/auth/me", api.Me)

	protected.Get("/notes", api.ListNotes)
	protected.Post("/notes", api.CreateNote)
	protected.Get("/notes/:id", api.GetNote)
	protected.Put("/notes/:id", api.UpdateNote)
	protected.Delete("/notes/:id", api.DeleteNote)

	protected.Get("/bookmarks", api.ListBookmarks)
	protected.Post("/bookmarks", api.CreateBookmark)
	protected.Get("/bookmarks/:id", api.GetBookmark)
	protected.Put("/bookmarks/:id", api.UpdateBookmark)
	protected.Delete("/bookmarks/:id", api.DeleteBookmark)

	protected.Get("/comments", api.ListComments)
	protected.Post("/comments", api.CreateComment)
	protected.Get("/comments/:referenceId", api.CommentsByReference)

	protected.Get("/favorites", api.ListFavorites)
	protected.Post("/favorites", api.AddFavorite)
	protected.Delete("/favorites/:id", api.RemoveFavorite)

	protected.Get("/activity", api.ListActivity)
	protected.Get("/search", api.Search)
	protected.Get("/analytics", api.Analytics)
	protected.Get("/analytics/stats", api.AnalyticsStats)
	protected.Get("/dashboard/stats", api.DashboardStats)
	protected.Get("/dashboard/activity", api.DashboardActivity)
}
