package database

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"homeboard/internal/models"
)

// Init opens the SQLite database and migrates every widget collection.
func Init(dbPath string) *gorm.DB {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			zap.L().Fatal("Failed to create database directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.Task{},
		&models.Note{},
		&models.ClipboardItem{},
		&models.Contact{},
		&models.Bookmark{},
		&models.Timer{},
		&models.RoadmapNote{},
	); err != nil {
		zap.L().Fatal("Failed to migrate database", zap.Error(err))
	}

	zap.L().Info("Database initialised and migrated successfully")

	return db
}
