package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"Potluck-Backend/cmd/config"
	"Potluck-Backend/internal/jobs"
	"Potluck-Backend/internal/utils"
	"Potluck-Backend/pkg/event"
	"Potluck-Backend/pkg/item"
	"Potluck-Backend/pkg/user"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrateItems := flag.Bool("migrate-items", false, "rewrite legacy RSVPs in the current dishes shape and exit")
	flag.Parse()

	utils.LoadConfig()

	store, err := config.ConnectStore()
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	if *migrateItems {
		itemService := item.NewItemService(
			item.NewItemRepository(store),
			event.NewEventRepository(store),
			user.NewUserRepository(store),
			nil,
		)
		n, err := itemService.MigrateLegacyItems(context.Background())
		if err != nil {
			log.Fatalf("legacy item migration failed after %d items: %v", n, err)
		}
		log.Infof("migrated %d legacy items", n)
		return
	}

	rollover, err := jobs.NewRolloverJob(store, utils.GetConfig("ROLLOVER_CRON"), utils.Location())
	if err != nil {
		log.Fatalf("invalid ROLLOVER_CRON: %v", err)
	}
	rollover.Start()
	defer rollover.Stop()

	app, err := config.NewApp(store)
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Errorw("server stopped", "error", err)
	}
}
