package database

import (
	"echo/internal/models"

	"gorm.io/gorm"
)

// AllModels returns every model registered for schema migration, in
// dependency order (referenced tables first).
func AllModels() []any {
	return []any{
		&models.User{},
		&models.Tweet{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Bookmark{},
	}
}

// Migrate applies the schema for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
