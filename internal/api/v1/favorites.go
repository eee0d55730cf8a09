package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

func (a *API) ListFavorites(c *fiber.Ctx) error {
	views, err := a.Projector.List(c.Context(), auth.UserID(c))
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch favorites")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(views)
}

type favoriteInput struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	ItemType string `json:"item_type" validate:"required,oneof=Note Bookmark"`
}

func (a *API) AddFavorite(c *fiber.Ctx) error {
	fi := new(favoriteInput)
	if err := utils.StrictBodyParser(c, fi); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse favorite body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	if verr := a.Validator.Validate(fi); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.First()})
	}

	itemID, err := uuid.Parse(fi.ItemID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item id"})
	}

	view, err := a.Projector.Add(c.Context(), auth.UserID(c), itemID, models.ItemType(fi.ItemType))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

func (a *API) RemoveFavorite(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Favorite not found"})
	}

	if err := a.Projector.Remove(c.Context(), auth.UserID(c), id); err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to remove favorite")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Removed from favorites"})
}
