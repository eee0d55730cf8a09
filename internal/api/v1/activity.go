package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

const activityFeedLimit = 10

// ListActivity returns the caller's latest activity entries, newest first.
func (a *API) ListActivity(c *fiber.Ctx) error {
	activities, err := a.Stores.Activities.Find(c.Context(), auth.UserID(c), store.Query{
		Sort:  store.SortCreatedDesc,
		Limit: activityFeedLimit,
	})
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch activity feed")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(activities)
}
