package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/sofregit/backend/internal/model"
)

// Migrate brings the relational schema up to date. Recipes are migrated
// even when they live in MongoDB so switching drivers needs no extra step.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
