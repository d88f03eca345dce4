package repository

import (
	"testing"
	"time"

	"github.com/theandrewmo/warbler/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// Each test gets its own database, so IDs start from 1 every time.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed-password",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateMessage(t *testing.T, db *gorm.DB, userID uint, text string, createdAt time.Time) *models.Message {
	t.Helper()
	msg := &models.Message{Text: text, UserID: userID, CreatedAt: createdAt}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("create message %q: %v", text, err)
	}
	return msg
}
