package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dentacademy/internal/catalog"
)

// respondError translates a catalog error kind into its HTTP status and the
// JSON error shape the UI expects. Unknown errors fall through to fiber's
// error handler as 500s.
func respondError(c *fiber.Ctx, err error) error {
	var e *catalog.Error
	if !errors.As(err, &e) {
		return err
	}

	return c.Status(statusOf(e.Kind)).JSON(fiber.Map{"error": e.Message})
}

func statusOf(kind catalog.Kind) int {
	switch kind {
	case catalog.KindUnauthorized:
		return fiber.StatusUnauthorized
	case catalog.KindForbidden:
		return fiber.StatusForbidden
	case catalog.KindNotFound:
		return fiber.StatusNotFound
	case catalog.KindValidation:
		return fiber.StatusBadRequest
	case catalog.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
