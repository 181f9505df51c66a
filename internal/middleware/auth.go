package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/dentacademy/internal/config"
	"github.com/example/dentacademy/internal/models"
	"github.com/example/dentacademy/internal/utils"
)

const (
	userContextKey  = "currentUserID"
	adminContextKey = "currentAdmin"
)

// RejectReason is the stable code attached to a guard rejection.
type RejectReason string

const (
	ReasonNoSession    RejectReason = "no_session"
	ReasonUserNotFound RejectReason = "user_not_found"
	ReasonForbidden    RejectReason = "forbidden"
)

// AuthMiddleware validates the bearer session token and loads the
// authenticated user ID into the request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, userID)
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}

// ResolveAdmin re-reads the caller's user record and checks its role against
// admin. The read happens on every call, never cached, so a role downgrade
// takes effect on the caller's very next request. A store failure is returned
// as an error, distinct from the rejection reasons, so callers surface it as
// an internal failure rather than an auth failure.
func ResolveAdmin(db *gorm.DB, userID uuid.UUID, hasSession bool) (*models.User, RejectReason, error) {
	if !hasSession {
		return nil, ReasonNoSession, nil
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Valid session pointing at a missing user row is a data
			// inconsistency, rejected the same way as no session.
			return nil, ReasonUserNotFound, nil
		}
		return nil, "", err
	}

	if user.Role != models.RoleAdmin {
		return nil, ReasonForbidden, nil
	}

	return &user, "", nil
}

// RequireAdmin rejects the request unless the caller's persisted role is
// admin. Runs after AuthMiddleware; every mutating catalog endpoint
// short-circuits here before touching the store.
func RequireAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetCurrentUserID(c)
		user, reason, err := ResolveAdmin(db, userID, ok)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve role")
		}
		if reason != "" {
			status := fiber.StatusUnauthorized
			if reason == ReasonForbidden {
				status = fiber.StatusForbidden
			}
			return c.Status(status).JSON(fiber.Map{
				"error":  "admin access required",
				"reason": reason,
			})
		}

		c.Locals(adminContextKey, user)
		return c.Next()
	}
}

// GetCurrentAdmin returns the admin user loaded by RequireAdmin.
func GetCurrentAdmin(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(adminContextKey).(*models.User)
	return user, ok
}
