package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/search"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

// Search runs a query across the caller's collections. The type parameter
// narrows the scope; empty means everything.
func (a *API) Search(c *fiber.Ctx) error {
	scope, err := search.ParseScope(c.Query("type"))
	if err != nil {
		return utils.HandleError(c, err)
	}

	results, err := a.Composer.Search(c.Context(), auth.UserID(c), c.Query("query"), scope)
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Search failed")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}
