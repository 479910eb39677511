package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := open(t, "testdb_")

	if err := db.AutoMigrate(&model.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// NewUnmigratedDB returns a database without the books table, so every
// query against it fails.
func NewUnmigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	return open(t, "errdb_")
}

func open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := "file:" + prefix + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// SeedBook inserts a book created `age` ago, which lets tests control
// the created_at ordering.
func SeedBook(t *testing.T, db *gorm.DB, title, author string, age time.Duration) model.Book {
	t.Helper()

	now := time.Now().Add(-age)

	book := model.Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

func CountBooks(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&model.Book{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count books: %v", err)
	}
	return n
}

func Ptr[T any](v T) *T {
	return &v
}
