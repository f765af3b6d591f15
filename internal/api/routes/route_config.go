package routes

import (
	"Potluck-Backend/internal/api/handlers"
	"Potluck-Backend/internal/middleware"
	"Potluck-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	EventHandler    handlers.EventHandler
	ItemHandler     handlers.ItemHandler
	RealtimeHandler handlers.RealtimeHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Events()
	c.Realtime()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	user.Get("/me", c.UserHandler.Me)
}

func (c *Config) Events() {
	events := c.App.Group("/api/v1/events", c.Middleware.AuthMiddleware(c.JWTService))

	events.Get("", c.EventHandler.GetMyEvents)
	events.Post("", c.EventHandler.CreateEvent)
	events.Post("/join", c.ItemHandler.JoinEvent)

	events.Get("/:id", c.EventHandler.GetEventDetail)
	events.Put("/:id", c.EventHandler.UpdateEvent)
	events.Delete("/:id", c.EventHandler.DeleteEvent)
	events.Get("/:id/share", c.EventHandler.GetShareLink)
	events.Post("/:id/image", c.EventHandler.UploadEventImage)
	events.Delete("/:id/leave", c.ItemHandler.LeaveEvent)

	// rsvps
	events.Post("/:id/items", c.ItemHandler.CreateItem)
	events.Put("/:id/items/:itemId", c.ItemHandler.UpdateItem)
	events.Delete("/:id/items/:itemId", c.ItemHandler.DeleteItem)
}

func (c *Config) Realtime() {
	ws := c.App.Group("/api/v1/ws", c.Middleware.AuthMiddleware(c.JWTService), c.RealtimeHandler.Upgrade)
	ws.Get("/events/:id", c.RealtimeHandler.EventStream())
}
