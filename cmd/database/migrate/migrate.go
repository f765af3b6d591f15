package migration

import (
	"fmt"

	"Potluck-Backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Document{}); err != nil {
		return fmt.Errorf("error migrating documents table: %w", err)
	}
	// prefix scans for subtree reads
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_documents_path_prefix ON documents (path text_pattern_ops);",
	).Error; err != nil {
		return fmt.Errorf("error creating path index: %w", err)
	}

	fmt.Println("Database migration complete")
	return nil
}
