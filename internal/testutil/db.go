// Package testutil provides an in-memory database for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/synesthesie/gallery/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated, private in-memory SQLite database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := models.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	// One connection keeps the in-memory database alive and serializes
	// transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// SeedImage stores an image with its asset and returns it.
func SeedImage(t testing.TB, db *gorm.DB, title string) models.Image {
	t.Helper()

	image := models.Image{
		Title:      title,
		Visibility: models.AssetVisibilityPublic,
		Asset: &models.Asset{
			Key:       fmt.Sprintf("images/%s.png", uuid.NewString()),
			Filename:  title + ".png",
			MimeType:  "image/png",
			SizeBytes: 1024,
		},
	}
	if err := db.Create(&image).Error; err != nil {
		t.Fatalf("seed image: %v", err)
	}
	return image
}
