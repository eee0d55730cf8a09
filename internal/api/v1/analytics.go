package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

// Analytics returns the bucket series selected by the type parameter. An
// empty selector falls back to the overview.
func (a *API) Analytics(c *fiber.Ctx) error {
	buckets, err := a.Engine.Series(c.Context(), auth.UserID(c), c.Query("type"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(buckets)
}

func (a *API) AnalyticsStats(c *fiber.Ctx) error {
	stats, err := a.Engine.Stats(c.Context(), auth.UserID(c))
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to compute stats summary")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
