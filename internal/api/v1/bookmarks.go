package v1

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

func (a *API) ListBookmarks(c *fiber.Ctx) error {
	bookmarks, err := a.Stores.Bookmarks.Find(c.Context(), auth.UserID(c), store.Query{Sort: store.SortUpdatedDesc})
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch bookmarks")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(bookmarks)
}

func (a *API) GetBookmark(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
	}

	bookmark, err := a.Stores.Bookmarks.Get(c.Context(), auth.UserID(c), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch bookmark")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(bookmark)
}

type bookmarkInput struct {
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	URL         string   `json:"url" validate:"required,notblank,weburl"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Tags        []string `json:"tags" validate:"omitempty,dive,max=50"`
}

func (a *API) CreateBookmark(c *fiber.Ctx) error {
	bi := new(bookmarkInput)
	if err := utils.StrictBodyParser(c, bi); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse bookmark body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	if verr := a.Validator.Validate(bi); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.First()})
	}

	userID := auth.UserID(c)
	bookmark := models.Bookmark{
		UserID:      userID,
		Title:       bi.Title,
		URL:         bi.URL,
		Description: bi.Description,
		Tags:        bi.Tags,
	}
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}

	if err := a.Stores.Bookmarks.Insert(c.Context(), &bookmark); err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to create bookmark")
		return utils.HandleError(c, err)
	}

	a.Recorder.Record(userID, models.ActivityBookmarkAdded, fmt.Sprintf("Added bookmark: %s", bookmark.Title), bookmark.ID)

	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

func (a *API) UpdateBookmark(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
	}

	type bookmarkUpdate struct {
		Title       *string   `json:"title" validate:"omitempty,notblank,max=200"`
		URL         *string   `json:"url" validate:"omitempty,notblank,weburl"`
		Description *string   `json:"description" validate:"omitempty,max=2000"`
		Tags        *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	}

	bu := new(bookmarkUpdate)
	if err := utils.StrictBodyParser(c, bu); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse bookmark update body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	if verr := a.Validator.Validate(bu); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.First()})
	}

	updates := map[string]interface{}{}
	if bu.Title != nil {
		updates["title"] = *bu.Title
	}
	if bu.URL != nil {
		updates["url"] = *bu.URL
	}
	if bu.Description != nil {
		updates["description"] = *bu.Description
	}
	if bu.Tags != nil {
		updates["tags"] = *bu.Tags
	}

	userID := auth.UserID(c)
	if len(updates) == 0 {
		bookmark, err := a.Stores.Bookmarks.Get(c.Context(), userID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
			}
			return utils.HandleError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(bookmark)
	}

	bookmark, err := a.Stores.Bookmarks.Update(c.Context(), userID, id, updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to update bookmark")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(bookmark)
}

func (a *API) DeleteBookmark(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
	}

	if err := a.Stores.Bookmarks.Delete(c.Context(), auth.UserID(c), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bookmark not found"})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to delete bookmark")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Bookmark deleted"})
}
