package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/testutil"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBookRepository_List_OrdersByCreatedAtDesc(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	testutil.SeedBook(t, db, "Oldest", "A", 3*time.Hour)
	testutil.SeedBook(t, db, "Newest", "B", 1*time.Hour)
	testutil.SeedBook(t, db, "Middle", "C", 2*time.Hour)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, "Newest", books[0].Title)
	assert.Equal(t, "Middle", books[1].Title)
	assert.Equal(t, "Oldest", books[2].Title)
}

func TestGormBookRepository_SearchByTitle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	testutil.SeedBook(t, db, "Clean Code", "Martin", 3*time.Hour)
	testutil.SeedBook(t, db, "Clean Architecture", "Martin", 2*time.Hour)
	testutil.SeedBook(t, db, "Domain-Driven Design", "Evans", 1*time.Hour)
	ctx := context.Background()

	t.Run("matches substring anywhere in the title", func(t *testing.T) {
		books, err := repo.SearchByTitle(ctx, "Arch")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Clean Architecture", books[0].Title)
	})

	t.Run("orders matches by created_at desc", func(t *testing.T) {
		books, err := repo.SearchByTitle(ctx, "Clean")
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Clean Architecture", books[0].Title)
		assert.Equal(t, "Clean Code", books[1].Title)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		books, err := repo.SearchByTitle(ctx, "Refactoring")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		books, err := repo.SearchByTitle(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, books)

		books, err = repo.SearchByTitle(ctx, "Clean_Code")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		books, err := repo.SearchByTitle(ctx, "")
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})
}

func TestGormBookRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	book := model.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, repo.Create(ctx, &book))

	assert.NotEqual(t, uuid.Nil, book.ID)
	assert.False(t, book.CreatedAt.IsZero())

	stored, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Title)
	assert.Equal(t, "Herbert", stored.Author)
	assert.Nil(t, stored.Genre)
	assert.Nil(t, stored.Year)
}

func TestGormBookRepository_Create_ValidationError(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	cases := []struct {
		name   string
		book   model.Book
		fields []string
	}{
		{"missing title", model.Book{Author: "X"}, []string{"title"}},
		{"blank author", model.Book{Title: "T", Author: "   "}, []string{"author"}},
		{"both missing", model.Book{}, []string{"title", "author"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.Create(context.Background(), &tc.book)
			require.Error(t, err)

			verr, ok := validation.As(err)
			require.True(t, ok, "expected *validation.Error, got %T: %v", err, err)

			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tc.fields, got)
		})
	}

	assert.Equal(t, int64(0), testutil.CountBooks(t, db))
}

func TestGormBookRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	target := testutil.SeedBook(t, db, "Dune", "Herbert", time.Hour)
	other := testutil.SeedBook(t, db, "Emma", "Austen", 2*time.Hour)

	genre := "Sci-Fi"
	year := 1965
	err := repo.Update(ctx, &model.Book{
		ID:     target.ID,
		Title:  "Dune Messiah",
		Author: "Frank Herbert",
		Genre:  &genre,
		Year:   &year,
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Equal(t, "Frank Herbert", updated.Author)
	require.NotNil(t, updated.Genre)
	assert.Equal(t, "Sci-Fi", *updated.Genre)
	require.NotNil(t, updated.Year)
	assert.Equal(t, 1965, *updated.Year)

	untouched, err := repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma", untouched.Title)
	assert.Equal(t, "Austen", untouched.Author)

	// A full replace clears optional fields that are no longer submitted.
	err = repo.Update(ctx, &model.Book{ID: target.ID, Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	cleared, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.Genre)
	assert.Nil(t, cleared.Year)
}

func TestGormBookRepository_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)

	existing := testutil.SeedBook(t, db, "Dune", "Herbert", time.Hour)

	err := repo.Update(context.Background(), &model.Book{ID: uuid.New(), Title: "X", Author: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Update(context.Background(), &model.Book{Title: "X", Author: "Y"})
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := repo.FindByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Title)
}

func TestGormBookRepository_Update_ValidationError(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	book := testutil.SeedBook(t, db, "Dune", "Herbert", time.Hour)

	err := repo.Update(ctx, &model.Book{ID: book.ID, Title: "", Author: "Herbert"})
	verr, ok := validation.As(err)
	require.True(t, ok, "expected *validation.Error, got %v", err)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, `Please give a value to "Title"`, verr.Fields[0].Message)

	stored, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Title)
}

func TestGormBookRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	target := testutil.SeedBook(t, db, "Dune", "Herbert", time.Hour)
	testutil.SeedBook(t, db, "Emma", "Austen", 2*time.Hour)

	require.NoError(t, repo.Delete(ctx, target.ID))
	assert.ErrorIs(t, repo.Delete(ctx, target.ID), ErrNotFound)

	_, err := repo.FindByID(ctx, target.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(1), testutil.CountBooks(t, db))
}

func TestGormBookRepository_InfrastructureErrorsPassThrough(t *testing.T) {
	db := testutil.NewUnmigratedDB(t)
	repo := NewGormBookRepository(db)
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = repo.Create(ctx, &model.Book{Title: "T", Author: "A"})
	require.Error(t, err)
	_, isValidation := validation.As(err)
	assert.False(t, isValidation)
}

func TestTranslate_NotNullViolation(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23502", ColumnName: "author"})

	verr, ok := validation.As(err)
	require.True(t, ok)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "author", verr.Fields[0].Field)
	assert.Equal(t, `Please give a value to "Author"`, verr.Fields[0].Message)

	other := errors.New("boom")
	assert.Same(t, other, translate(other))
	assert.NoError(t, translate(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
