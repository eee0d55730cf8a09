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

func (a *API) ListNotes(c *fiber.Ctx) error {
	notes, err := a.Stores.Notes.Find(c.Context(), auth.UserID(c), store.Query{Sort: store.SortUpdatedDesc})
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch notes")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(notes)
}

func (a *API) GetNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}

	note, err := a.Stores.Notes.Get(c.Context(), auth.UserID(c), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch note")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(note)
}

type noteInput struct {
	Title   string   `json:"title" validate:"required,notblank,max=200"`
	Content string   `json:"content" validate:"required,notblank,max=10000"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=50"`
}

func (a *API) CreateNote(c *fiber.Ctx) error {
	ni := new(noteInput)
	if err := utils.StrictBodyParser(c, ni); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse note body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	if verr := a.Validator.Validate(ni); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.First()})
	}

	userID := auth.UserID(c)
	note := models.Note{
		UserID:  userID,
		Title:   ni.Title,
		Content: ni.Content,
		Tags:    ni.Tags,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := a.Stores.Notes.Insert(c.Context(), &note); err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to create note")
		return utils.HandleError(c, err)
	}

	a.Recorder.Record(userID, models.ActivityNoteCreated, fmt.Sprintf("Created note: %s", note.Title), note.ID)

	return c.Status(fiber.StatusCreated).JSON(note)
}

func (a *API) UpdateNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}

	type noteUpdate struct {
		Title   *string   `json:"title" validate:"omitempty,notblank,max=200"`
		Content *string   `json:"content" validate:"omitempty,notblank,max=10000"`
		Tags    *[]string `json:"tags" validate:"omitempty,dive,max=50"`
	}

	nu := new(noteUpdate)
	if err := utils.StrictBodyParser(c, nu); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse note update body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	if verr := a.Validator.Validate(nu); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.First()})
	}

	updates := map[string]interface{}{}
	if nu.Title != nil {
		updates["title"] = *nu.Title
	}
	if nu.Content != nil {
		updates["content"] = *nu.Content
	}
	if nu.Tags != nil {
		updates["tags"] = *nu.Tags
	}

	userID := auth.UserID(c)
	if len(updates) == 0 {
		note, err := a.Stores.Notes.Get(c.Context(), userID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
			}
			return utils.HandleError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(note)
	}

	note, err := a.Stores.Notes.Update(c.Context(), userID, id, updates)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to update note")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(note)
}

func (a *API) DeleteNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}

	if err := a.Stores.Notes.Delete(c.Context(), auth.UserID(c), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to delete note")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Note deleted"})
}
