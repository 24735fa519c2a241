package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/tomato/backend/internal/model"
)

// RunMigrations creates or updates the recipe and review tables
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Recipe{}, &model.Review{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
