package handlers

import (
	"Potluck-Backend/domain"
	"Potluck-Backend/internal/api/presenters"
	"Potluck-Backend/pkg/event"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	EventHandler interface {
		CreateEvent(c *fiber.Ctx) error
		UpdateEvent(c *fiber.Ctx) error
		DeleteEvent(c *fiber.Ctx) error
		GetEventDetail(c *fiber.Ctx) error
		GetMyEvents(c *fiber.Ctx) error
		GetShareLink(c *fiber.Ctx) error
		UploadEventImage(c *fiber.Ctx) error
	}

	eventHandler struct {
		eventService event.EventService
		validator    *validator.Validate
	}
)

func NewEventHandler(eventService event.EventService, validator *validator.Validate) EventHandler {
	return &eventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *eventHandler) CreateEvent(c *fiber.Ctx) error {
	req := new(domain.CreateEventRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateEvent, err)
	}

	res, err := h.eventService.CreateEvent(c.Context(), *req, sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedCreateEvent, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateEvent)
}

func (h *eventHandler) UpdateEvent(c *fiber.Ctx) error {
	req := new(domain.UpdateEventRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateEvent, err)
	}

	if err := h.eventService.UpdateEvent(c.Context(), c.Params("id"), *req, sessionFrom(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUpdateEvent, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateEvent)
}

func (h *eventHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.eventService.DeleteEvent(c.Context(), c.Params("id"), sessionFrom(c)); err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteEvent, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteEvent)
}

func (h *eventHandler) GetEventDetail(c *fiber.Ctx) error {
	res, err := h.eventService.GetEventDetail(c.Context(), c.Params("id"), c.Query("category"), sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetEvent, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetEvent)
}

func (h *eventHandler) GetMyEvents(c *fiber.Ctx) error {
	res, err := h.eventService.GetMyEvents(c.Context(), sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetEvents, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetEvents)
}

func (h *eventHandler) GetShareLink(c *fiber.Ctx) error {
	res, err := h.eventService.GetShareLink(c.Context(), c.Params("id"), sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedShareEvent, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessShareEvent)
}

func (h *eventHandler) UploadEventImage(c *fiber.Ctx) error {
	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req := domain.UploadEventImageRequest{Image: image}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.eventService.UploadEventImage(c.Context(), c.Params("id"), req, sessionFrom(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
