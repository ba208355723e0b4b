package response

import (
	"errors"

	"saudapakka/internal/repositories"
	"saudapakka/internal/services/auth"
	"saudapakka/internal/services/moderation"
	"saudapakka/internal/services/property"
	"saudapakka/internal/services/user"

	"github.com/gofiber/fiber/v2"
)

// Error kinds surfaced to clients alongside the human-readable message.
const (
	KindNotFound         = "NOT_FOUND"
	KindPermissionDenied = "PERMISSION_DENIED"
	KindUnauthenticated  = "UNAUTHENTICATED"
	KindInvalidArgument  = "INVALID_ARGUMENT"
	KindConflict         = "CONFLICT"
	KindInternal         = "INTERNAL"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"kind":  kind,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, KindInvalidArgument, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, KindNotFound, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, KindPermissionDenied, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, KindUnauthenticated, "Unauthorized")
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, KindConflict, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, KindInternal, message)
}

// FromError maps service sentinels onto the client error taxonomy.
func FromError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, property.ErrNotFound),
		errors.Is(err, repositories.ErrPropertyNotFound),
		errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrKycNotFound),
		errors.Is(err, auth.ErrUserNotFound):
		return NotFound(c, err.Error())

	case errors.Is(err, property.ErrUnauthenticated):
		return Unauthorized(c)

	case errors.Is(err, property.ErrSellerOrBrokerRequired),
		errors.Is(err, property.ErrNotOwner),
		errors.Is(err, property.ErrModeratorRequired),
		errors.Is(err, auth.ErrAccountBlocked),
		errors.Is(err, auth.ErrStaffOnly),
		errors.Is(err, user.ErrKycRequired):
		return Forbidden(c, err.Error())

	case errors.Is(err, property.ErrInvalidInput),
		errors.Is(err, moderation.ErrInvalidAction),
		errors.Is(err, moderation.ErrInvalidUserAction),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrOTPExpired):
		return BadRequest(c, err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials):
		return Error(c, fiber.StatusUnauthorized, KindUnauthenticated, err.Error())

	case errors.Is(err, repositories.ErrEmailTaken):
		return Conflict(c, err.Error())

	default:
		return ServerError(c, "internal server error")
	}
}
