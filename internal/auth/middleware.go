package auth

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mnuddindev/secondbrain/internal/db"
	"github.com/mnuddindev/secondbrain/internal/models"
	"github.com/mnuddindev/secondbrain/internal/store"
	"github.com/mnuddindev/secondbrain/pkg/logger"
)

// Options carries the middleware dependencies.
type Options struct {
	JWT     *JWT
	Users   store.UserSource
	Rclient *db.RedisClient
	Logger  *logger.Logger
}

const userCacheTTL = 30 * time.Minute

// Protected authenticates the bearer token and resolves the principal. A
// missing token is 401; an invalid or expired one is 403. The resolved user
// id and entity are stored in locals for the handlers.
func Protected(opt Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access token required",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access token required",
			})
		}

		claims, err := opt.JWT.VerifyToken(token)
		if err != nil {
			opt.Logger.Warn(c.Context()).WithMeta(map[string]string{"error": err.Error()}).Logs("Token verification failed")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user := cachedUser(c, opt, userID)
		if user == nil {
			user, err = opt.Users.ByID(c.Context(), userID)
			if err != nil {
				opt.Logger.Warn(c.Context()).WithFields("user_id", claims.UserID).Logs("User not found during token validation")
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "User not found",
				})
			}
			cacheUser(c, opt, user)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user", user)
		c.SetUserContext(logger.SetupRoutesContext(c))
		return c.Next()
	}
}

func cachedUser(c *fiber.Ctx, opt Options, userID uuid.UUID) *models.User {
	if opt.Rclient == nil {
		return nil
	}
	cached, err := opt.Rclient.Get(c.Context(), "user:"+userID.String()).Result()
	if err != nil || cached == "" {
		return nil
	}
	user := &models.User{}
	if err := json.Unmarshal([]byte(cached), user); err != nil {
		opt.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to unmarshal cached user")
		return nil
	}
	return user
}

func cacheUser(c *fiber.Ctx, opt Options, user *models.User) {
	if opt.Rclient == nil {
		return
	}
	userJSON, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := opt.Rclient.Set(c.Context(), "user:"+user.ID.String(), userJSON, userCacheTTL).Err(); err != nil {
		opt.Logger.Warn(c.Context()).WithFields("error", err).Logs("Failed to cache user in Redis")
	}
}

// UserID returns the authenticated caller's id from locals.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// CurrentUser returns the authenticated principal from locals.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil
	}
	return user
}
