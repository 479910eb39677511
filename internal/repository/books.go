package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("book not found")

type BookRepository interface {
	List(ctx context.Context) ([]model.Book, error)
	SearchByTitle(ctx context.Context, query string) ([]model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) List(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) SearchByTitle(ctx context.Context, query string) ([]model.Book, error) {
	var books []model.Book
	if err := r.db.WithContext(ctx).
		Where(`title LIKE ? ESCAPE '\'`, "%"+escapeLike(query)+"%").
		Order("created_at DESC").
		Find(&books).Error; err != nil {

		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return translate(r.db.WithContext(ctx).Create(book).Error)
}

// Update replaces every editable field, so a nil Genre or Year clears the column.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	if book.ID == uuid.Nil {
		return ErrNotFound
	}

	result := r.db.WithContext(ctx).
		Model(book).
		Select("Title", "Author", "Genre", "Year", "UpdatedAt").
		Updates(book)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

const pgNotNullViolation = "23502"

var columnLabels = map[string]string{
	"title":  "Title",
	"author": "Author",
}

// translate maps a NOT NULL violation from postgres onto the same
// validation error the model hook produces.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNotNullViolation {
		label, ok := columnLabels[pgErr.ColumnName]
		if !ok {
			label = pgErr.ColumnName
		}
		return validation.NewError(validation.FieldError{
			Field:   pgErr.ColumnName,
			Rule:    "notnull",
			Message: `Please give a value to "` + label + `"`,
		})
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
