package v1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/secondbrain/internal/auth"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/utils"
)

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.AvatarURL,
	}
}

func (a *API) Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Name     string `json:"name" validate:"required,notblank,max=100"`
		Email    string `json:"email" validate:"required,email,max=100"`
		Password string `json:"password" validate:"required,min=6,max=100"`
	}

	ri := new(RegisterInput)
	if err := utils.StrictBodyParser(c, ri); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse register request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if verr := a.Validator.Validate(ri); verr != nil {
		a.Logger.Warn(c.Context()).WithFields("details", verr.First()).Logs("Registration validation failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.First(),
		})
	}

	ri.Email = strings.ToLower(strings.TrimSpace(ri.Email))

	if _, err := a.Stores.Users.ByEmail(c.Context(), ri.Email); err == nil {
		a.Logger.Warn(c.Context()).WithFields("email", ri.Email).Logs("Duplicate registration attempt")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User already exists",
		})
	} else if !errors.Is(err, store.ErrNotFound) {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to check existing user")
		return utils.HandleError(c, err)
	}

	hashedPass, err := utils.HashPassword(ri.Password)
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to hash password")
		return utils.HandleError(c, err)
	}

	user := models.User{
		Name:      strings.TrimSpace(ri.Name),
		Email:     ri.Email,
		Password:  hashedPass,
		AvatarURL: fmt.Sprintf("https://api.multiavatar.com/%s.svg", url.PathEscape(strings.TrimSpace(ri.Name))),
	}
	if err := a.Stores.Users.Create(c.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User already exists",
			})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to create user")
		return utils.HandleError(c, err)
	}

	token, err := a.JWT.GenerateToken(user.ID.String())
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to generate access token")
		return utils.HandleError(c, err)
	}

	a.Logger.Info(c.Context()).WithFields("user_id", user.ID).Logs("User registered successfully")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created",
		"token":   token,
		"user":    userPayload(&user),
	})
}

func (a *API) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email,max=100"`
		Password string `json:"password" validate:"required,min=6,max=100"`
	}

	li := new(LoginInput)
	if err := utils.StrictBodyParser(c, li); err != nil {
		a.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to parse login request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}

	if verr := a.Validator.Validate(li); verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.First(),
		})
	}

	ipKey := "login:ip:" + c.IP()
	if count, err := a.Redis.Get(c.Context(), ipKey).Int(); err == nil && count >= 5 {
		a.Logger.Warn(c.Context()).WithFields("ip", c.IP()).Logs("Login rate limit exceeded")
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many login attempts. Try again later.",
		})
	}
	a.Redis.Incr(c.Context(), ipKey)
	a.Redis.Expire(c.Context(), ipKey, 15*time.Minute)

	li.Email = strings.ToLower(strings.TrimSpace(li.Email))

	user, err := a.Stores.Users.ByEmail(c.Context(), li.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.Logger.Warn(c.Context()).WithFields("email", li.Email).Logs("Login attempt for unknown email")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to fetch user")
		return utils.HandleError(c, err)
	}

	if err := utils.ComparePasswords(user.Password, li.Password); err != nil {
		a.Logger.Warn(c.Context()).WithFields("email", li.Email).Logs("Invalid password provided")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := a.JWT.GenerateToken(user.ID.String())
	if err != nil {
		a.Logger.Error(c.Context()).WithFields("error", err).Logs("Failed to generate access token")
		return utils.HandleError(c, err)
	}

	a.Redis.Del(c.Context(), ipKey)
	a.Logger.Info(c.Context()).WithFields("user_id", user.ID).Logs("User logged in successfully")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(user),
	})
}

func (a *API) Me(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"avatar":     user.AvatarURL,
		"created_at": user.CreatedAt,
	})
}
