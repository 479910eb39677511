package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
)

// fail hands err to ErrorHandler and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler is the one place errors from book handlers become
// responses: ErrNotFound is a 404 page, anything else a logged 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		if c.Writer.Written() {
			log.Warn().
				Err(last.Err).
				Str("request_id", middleware.RequestIDFrom(c)).
				Int("status", c.Writer.Status()).
				Msg("request failed")
			return
		}

		if errors.Is(last.Err, repository.ErrNotFound) {
			NotFound(c)
			return
		}

		serverError(c, last.Err)
	}
}

func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not-found", gin.H{
		"title": "Page Not Found",
	})
}

// Recover renders the error page for a panic that escaped a handler.
func Recover(c *gin.Context, recovered any) {
	serverError(c, fmt.Errorf("panic: %v", recovered))
	c.Abort()
}

func serverError(c *gin.Context, err error) {
	requestID := middleware.RequestIDFrom(c)

	log.Error().
		Err(err).
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"title":     "Server Error",
		"requestID": requestID,
	})
}
