package config

import (
	"fmt"

	migration "Potluck-Backend/cmd/database/migrate"
	"Potluck-Backend/internal/utils"
	"Potluck-Backend/pkg/realtime"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
		utils.GetConfig("TIMEZONE"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

// ConnectStore opens the realtime store selected by STORE_DRIVER.
func ConnectStore() (realtime.Store, error) {
	switch driver := utils.GetConfig("STORE_DRIVER"); driver {
	case "memory":
		log.Warn("using in-memory store, data is lost on restart")
		return realtime.NewMemoryStore(), nil
	case "postgres":
		db, err := ConnectDB()
		if err != nil {
			return nil, err
		}
		if err := migration.Migrate(db); err != nil {
			return nil, err
		}
		return realtime.NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}
