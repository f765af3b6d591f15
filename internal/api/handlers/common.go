package handlers

import (
	"errors"

	"Potluck-Backend/domain"
	"Potluck-Backend/internal/utils"
	"Potluck-Backend/internal/utils/storage"
	"Potluck-Backend/pkg/potluck"
	"Potluck-Backend/pkg/realtime"

	"github.com/gofiber/fiber/v2"
)

func sessionFrom(c *fiber.Ctx) potluck.Session {
	userID, _ := c.Locals("user_id").(string)
	return potluck.NewSession(userID, utils.Now())
}

func identityFrom(c *fiber.Ctx) domain.Identity {
	uid, _ := c.Locals("user_id").(string)
	name, _ := c.Locals("name").(string)
	email, _ := c.Locals("email").(string)
	photo, _ := c.Locals("photo_url").(string)
	return domain.Identity{
		UID:         uid,
		DisplayName: name,
		Email:       email,
		PhotoURL:    photo,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrEventNotEditable),
		errors.Is(err, domain.ErrEventNotShareable),
		errors.Is(err, domain.ErrItemNotEditable),
		errors.Is(err, domain.ErrEventPast):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyRSVPd),
		errors.Is(err, domain.ErrHostCannotLeave):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrImageStorageNotSet):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidEventDate),
		errors.Is(err, domain.ErrInvalidEventTime),
		errors.Is(err, storage.ErrFileTypeNotAllowed),
		errors.Is(err, realtime.ErrInvalidPath):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
