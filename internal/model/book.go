package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
	"gorm.io/gorm"
)

type Book struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null" validate:"notblank" label:"Title"`
	Author    string    `gorm:"not null" validate:"notblank" label:"Author"`
	Genre     *string
	Year      *int
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BeforeSave runs on both create and update, so no write reaches the
// database with a blank title or author.
func (b *Book) BeforeSave(tx *gorm.DB) error {
	return b.Validate()
}

func (b *Book) Validate() error {
	return validation.Validate(b)
}
