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

// commentView carries a comment together with its author's display name.
type commentView struct {
	models.Comment
	Author string `json:"author"`
}

func (a *API) withAuthor(c *fiber.Ctx, comments []models.Comment) []commentView {
	author := ""
	if user := auth.CurrentUser(c); user != nil {
		author = user.Name
	}
	views := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, commentView{Comment: cm, Author: author})
	}
	return views
}

func (a *API) ListComments(c *fiber.Ctx) error {
	comments, err := a.Stores.Comments.Find(c.Context(), auth.UserID(c), store.Query{Sort: store.SortCreatedDesc})
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch comments")
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(a.withAuthor(c, comments))
}

// CommentsByReference lists the caller's comments on a single note or
// bookmark, newest first.
func (a *API) CommentsByReference(c *fiber.Ctx) error {
	referenceID, err := uuid.Parse(c.Params("referenceId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reference id"})
	}

	comments, err := a.Stores.Comments.Find(c.Context(), auth.UserID(c), store.Query{Sort: store.SortCreatedDesc})
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch comments")
		return utils.HandleError(c, err)
	}

	matched := make([]models.Comment, 0, len(comments))
	for _, cm := range comments {
		if cm.ReferenceID == referenceID {
			matched = append(matched, cm)
		}
	}
	return c.Status(fiber.StatusOK).JSON(a.withAuthor(c, matched))
}

type commentInput struct {
	ReferenceID   string `json:"reference_id" validate:"required,uuid"`
	ReferenceType string `json:"reference_type" validate:"omitempty,oneof=note bookmark"`
	Text          string `json:"text" validate:"required,notblank,max=1000"`
}

func (a *API) CreateComment(c *fiber.Ctx) error {
	ci := new(commentInput)
	if err := utils.StrictBodyParser(c, ci); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse comment body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	if verr := a.Validator.Validate(ci); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.First()})
	}

	referenceID, err := uuid.Parse(ci.ReferenceID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reference id"})
	}
	if ci.ReferenceType == "" {
		ci.ReferenceType = models.ReferenceBookmark
	}

	userID := auth.UserID(c)

	// The reference must be one of the caller's own items.
	var title string
	switch ci.ReferenceType {
	case models.ReferenceNote:
		note, err := a.Stores.Notes.Get(c.Context(), userID, referenceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referenced item not found"})
			}
			return utils.HandleError(c, err)
		}
		title = note.Title
	case models.ReferenceBookmark:
		bookmark, err := a.Stores.Bookmarks.Get(c.Context(), userID, referenceID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referenced item not found"})
			}
			return utils.HandleError(c, err)
		}
		title = bookmark.Title
	}

	comment := models.Comment{
		UserID:        userID,
		ReferenceID:   referenceID,
		ReferenceType: ci.ReferenceType,
		Text:          ci.Text,
	}
	if err := a.Stores.Comments.Insert(c.Context(), &comment); err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to create comment")
		return utils.HandleError(c, err)
	}

	a.Recorder.Record(userID, models.ActivityCommentPosted, fmt.Sprintf("Commented on: %s", title), comment.ReferenceID)

	views := a.withAuthor(c, []models.Comment{comment})
	return c.Status(fiber.StatusCreated).JSON(views[0])
}
