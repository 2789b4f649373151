package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "secureflow/internal/errors"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError maps a domain error to its HTTP status with both the
// machine-readable code and human-readable message; anything else becomes a
// plain 500.
func FromError(c *fiber.Ctx, err error) error {
	var derr *apperrors.DomainError
	if errors.As(err, &derr) {
		return c.Status(derr.Status).JSON(fiber.Map{
			"error": derr.Message,
			"code":  derr.Code,
		})
	}
	return ServerError(c, "internal server error")
}
