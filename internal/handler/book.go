package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

const (
	booksPath = "/books"

	notFoundMessage = "Sorry, the book(s) you're looking for are in another castle :("

	createTitle  = "New Book"
	createButton = "Create New Book"
	updateTitle  = "Update Book"
	updateButton = "Update Book"
)

type BookHandler struct {
	repo repository.BookRepository
}

func NewBookHandler(repo repository.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group(booksPath)
	{
		// Served with and without the trailing slash.
		for _, root := range []string{"", "/"} {
			books.GET(root, h.ListBooks)
			books.POST(root, h.SearchBooks)
		}
		books.GET("/new", h.NewBookForm)
		books.POST("/new", h.CreateBook)
		books.GET("/:id", h.EditBookForm)
		books.POST("/:id", h.UpdateBook)
		books.GET("/:id/delete", h.ConfirmDelete)
		books.POST("/:id/delete", h.DeleteBook)
	}
}

// ListBooks renders every book, newest first.
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"books": books,
		"title": "Books",
	})
}

// SearchBooks lists the books whose title contains the posted query. It
// answers 200 even when nothing matches; the miss is shown as a message
// on the results page.
func (h *BookHandler) SearchBooks(c *gin.Context) {
	query := c.PostForm("title")

	books, err := h.repo.SearchByTitle(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}

	data := gin.H{
		"title": `Books matching "` + query + `":`,
		"query": query,
	}
	if len(books) > 0 {
		data["books"] = books
	} else {
		data["error"] = notFoundMessage
	}

	c.HTML(http.StatusOK, "results", data)
}

// NewBookForm renders an empty create form.
func (h *BookHandler) NewBookForm(c *gin.Context) {
	renderForm(c, "new-book", BookForm{}, nil)
}

// CreateBook stores the posted book and redirects to the listing. An
// invalid draft is rendered back with its errors.
func (h *BookHandler) CreateBook(c *gin.Context) {
	var form BookForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return
	}

	book, verr := form.Book()
	if verr != nil {
		renderForm(c, "new-book", form, verr)
		return
	}

	if err := h.repo.Create(c.Request.Context(), &book); err != nil {
		if verr, ok := validation.As(err); ok {
			renderForm(c, "new-book", form, verr)
			return
		}
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, booksPath)
}

func (h *BookHandler) EditBookForm(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	renderForm(c, "update-book", toBookForm(*book), nil)
}

// UpdateBook replaces every editable field of an existing book.
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := h.repo.FindByID(ctx, id); err != nil {
		fail(c, err)
		return
	}

	var form BookForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return
	}
	form.ID = id.String()

	book, verr := form.Book()
	if verr != nil {
		renderForm(c, "update-book", form, verr)
		return
	}
	book.ID = id

	if err := h.repo.Update(ctx, &book); err != nil {
		if verr, ok := validation.As(err); ok {
			renderForm(c, "update-book", form, verr)
			return
		}
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, booksPath)
}

func (h *BookHandler) ConfirmDelete(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "delete", gin.H{
		"book":  toBookForm(*book),
		"title": "Delete Book",
	})
}

// DeleteBook removes the book and redirects to the listing.
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	// Delete reports ErrNotFound itself, so a second delete of the same
	// id lands on the 404 page without touching other rows.
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, booksPath)
}

// bookID treats a malformed id like a missing row.
func bookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, repository.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func renderForm(c *gin.Context, page string, form BookForm, verr *validation.Error) {
	title, button := createTitle, createButton
	if page == "update-book" {
		title, button = updateTitle, updateButton
	}

	data := gin.H{
		"book":   form,
		"title":  title,
		"button": button,
	}
	if verr != nil {
		data["errors"] = verr.Fields
	}

	c.HTML(http.StatusOK, page, data)
}
