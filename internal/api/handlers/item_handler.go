package handlers

import (
	"Potluck-Backend/domain"
	"Potluck-Backend/internal/api/presenters"
	"Potluck-Backend/pkg/item"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ItemHandler interface {
		CreateItem(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		JoinEvent(c *fiber.Ctx) error
		LeaveEvent(c *fiber.Ctx) error
	}

	itemHandler struct {
		itemService item.ItemService
		validator   *validator.Validate
	}
)

func NewItemHandler(itemService item.ItemService, validator *validator.Validate) ItemHandler {
	return &itemHandler{
		itemService: itemService,
		validator:   validator,
	}
}

func (h *itemHandler) CreateItem(c *fiber.Ctx) error {
	req := new(domain.CreateItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateItem, err)
	}

	res, err := h.itemService.CreateItem(c.Context(), c.Params("id"), *req, sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateItem)
}

func (h *itemHandler) UpdateItem(c *fiber.Ctx) error {
	req := new(domain.UpdateItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateItem, err)
	}

	err := h.itemService.UpdateItem(c.Context(), c.Params("id"), c.Params("itemId"), *req, sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateItem)
}

func (h *itemHandler) DeleteItem(c *fiber.Ctx) error {
	err := h.itemService.DeleteItem(c.Context(), c.Params("id"), c.Params("itemId"), sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

func (h *itemHandler) JoinEvent(c *fiber.Ctx) error {
	req := new(domain.JoinEventRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedJoinEvent, err)
	}

	if err := h.itemService.JoinEvent(c.Context(), *req, sessionFrom(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedJoinEvent, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{"event_id": req.EventID}, fiber.StatusOK, domain.MessageSuccessJoinEvent)
}

func (h *itemHandler) LeaveEvent(c *fiber.Ctx) error {
	if err := h.itemService.LeaveEvent(c.Context(), c.Params("id"), sessionFrom(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedLeaveEvent, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLeaveEvent)
}
