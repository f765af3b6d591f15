package handlers

import (
	"context"

	"Potluck-Backend/domain"
	"Potluck-Backend/internal/api/presenters"
	"Potluck-Backend/pkg/event"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type (
	RealtimeHandler interface {
		Upgrade(c *fiber.Ctx) error
		EventStream() fiber.Handler
	}

	realtimeHandler struct {
		eventService event.EventService
	}
)

func NewRealtimeHandler(eventService event.EventService) RealtimeHandler {
	return &realtimeHandler{
		eventService: eventService,
	}
}

func (h *realtimeHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// EventStream pushes a freshly computed detail view each time the event
// changes, until either side closes the connection.
func (h *realtimeHandler) EventStream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("user_id").(string)
		eventID := conn.Params("id")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stream, err := h.eventService.WatchEvent(ctx, eventID, userID)
		if err != nil {
			_ = conn.WriteJSON(presenters.Response{
				Status:  false,
				Message: domain.MessageFailedGetEvent,
				Error:   err.Error(),
			})
			return
		}

		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for msg := range stream {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debugw("event stream closed", "event_id", eventID, "user_id", userID, "error", err)
				return
			}
			if msg.Type == domain.StreamMessageDeleted {
				return
			}
		}
	})
}
