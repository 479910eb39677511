package handler

import (
	"strconv"
	"strings"

	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

// BookForm is the draft a create or update form posts. It is never stored;
// when validation fails it is handed back to the template so the user's
// input survives the round trip.
type BookForm struct {
	ID     string `form:"-"`
	Title  string `form:"title"`
	Author string `form:"author"`
	Genre  string `form:"genre"`
	Year   string `form:"year"`
}

func toBookForm(b model.Book) BookForm {
	f := BookForm{
		ID:     b.ID.String(),
		Title:  b.Title,
		Author: b.Author,
	}
	if b.Genre != nil {
		f.Genre = *b.Genre
	}
	if b.Year != nil {
		f.Year = strconv.Itoa(*b.Year)
	}
	return f
}

// Book converts the draft into a model. A year that is not a whole number
// is reported together with whatever the model itself rejects.
func (f BookForm) Book() (model.Book, *validation.Error) {
	book := model.Book{
		Title:  f.Title,
		Author: f.Author,
		Genre:  optional(f.Genre),
	}

	y := strings.TrimSpace(f.Year)
	if y == "" {
		return book, nil
	}

	year, err := strconv.Atoi(y)
	if err == nil {
		book.Year = &year
		return book, nil
	}

	yearErr := validation.NewError(validation.FieldError{
		Field:   "year",
		Rule:    "int",
		Message: `Please give a whole number for "Year"`,
	})

	modelErr, _ := validation.As(book.Validate())
	return book, validation.Merge(modelErr, yearErr)
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
