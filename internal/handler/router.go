package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/view"
)

type RouterOptions struct {
	Books  repository.BookRepository
	Health *HealthHandler

	// Middleware runs after recovery and before the error handler.
	Middleware []gin.HandlerFunc
}

func NewRouter(opts RouterOptions) *gin.Engine {
	e := gin.New()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	e.SetHTMLTemplate(view.MustTemplates())

	e.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		gin.CustomRecovery(Recover),
	)
	e.Use(opts.Middleware...)
	e.Use(ErrorHandler())

	e.NoRoute(NotFound)
	e.StaticFS("/static", view.Static())

	e.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, booksPath)
	})

	if opts.Health != nil {
		opts.Health.RegisterRoutes(e)
	}

	NewBookHandler(opts.Books).RegisterRoutes(e.Group(""))

	return e
}
