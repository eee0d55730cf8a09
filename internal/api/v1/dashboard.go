package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

func (a *API) DashboardStats(c *fiber.Ctx) error {
	stats, err := a.Engine.Dashboard(c.Context(), auth.UserID(c))
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to compute dashboard stats")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// DashboardActivity mirrors the main feed for the dashboard widget.
func (a *API) DashboardActivity(c *fiber.Ctx) error {
	activities, err := a.Stores.Activities.Find(c.Context(), auth.UserID(c), store.Query{
		Sort:  store.SortCreatedDesc,
		Limit: activityFeedLimit,
	})
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch dashboard activity")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(activities)
}
