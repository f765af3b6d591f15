package handlers

import (
	"Potluck-Backend/domain"
	"Potluck-Backend/internal/api/presenters"
	"Potluck-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Me(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
	}
)

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandler{
		userService: userService,
	}
}

// Me refreshes the stored profile from the token claims.
func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.SyncProfile(c.Context(), identityFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}
