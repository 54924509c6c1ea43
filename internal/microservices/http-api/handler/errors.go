package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"comboshare/internal/logging"
	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/validation"

	"github.com/gin-gonic/gin"
)

// RequestTimeout bounds the work of a single request. Overridden from config at startup.
var RequestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), RequestTimeout)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrComboNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCharacterNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrCommentEmpty),
		errors.Is(err, service.ErrCommentTooLong),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrParentNotFound):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDeletedCombo),
		errors.Is(err, service.ErrDeletedComment):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotCommentOwner):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Unexpected errors are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		msg = http.StatusText(status)
	}
	c.JSON(status, gin.H{"error": msg})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message(err)})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
