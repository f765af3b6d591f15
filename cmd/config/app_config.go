package config

import (
	"os"
	"strings"
	"time"

	"Potluck-Backend/domain"
	"Potluck-Backend/internal/api/handlers"
	"Potluck-Backend/internal/api/routes"
	"Potluck-Backend/internal/middleware"
	"Potluck-Backend/internal/utils"
	"Potluck-Backend/internal/utils/mailing"
	"Potluck-Backend/internal/utils/storage"
	"Potluck-Backend/pkg/event"
	"Potluck-Backend/pkg/item"
	"Potluck-Backend/pkg/jwt"
	"Potluck-Backend/pkg/realtime"
	"Potluck-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func NewApp(store realtime.Store) (*fiber.App, error) {
	jwtSecret := utils.GetConfig("JWT_SECRET")
	if jwtSecret == "" {
		return nil, domain.ErrJWTSecretNotSet
	}

	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("TIMEZONE"),
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
		Next: func(c *fiber.Ctx) bool {
			// long lived stream connections
			return strings.EqualFold(c.Get(fiber.HeaderUpgrade), "websocket")
		},
	}))

	// utils
	s3 := storage.NewAwsS3()
	notifier := mailing.NewMailNotifier()

	// Repository
	userRepository := user.NewUserRepository(store)
	eventRepository := event.NewEventRepository(store)
	itemRepository := item.NewItemRepository(store)

	// Service
	jwtService := jwt.NewJWTService(jwtSecret, utils.GetConfig("JWT_ISSUER"))
	userService := user.NewUserService(userRepository)
	eventService := event.NewEventService(eventRepository, userRepository, s3, utils.Now)
	itemService := item.NewItemService(itemRepository, eventRepository, userRepository, notifier)

	// Handler
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	realtimeHandler := handlers.NewRealtimeHandler(eventService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		EventHandler:    eventHandler,
		ItemHandler:     itemHandler,
		RealtimeHandler: realtimeHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
