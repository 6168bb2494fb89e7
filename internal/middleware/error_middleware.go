package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

// HandleError maps an error kind to its single response shape:
// unauthorized redirects home, the rest answer with a plain-text status.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.Redirect(http.StatusFound, "/")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.String(http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, apperrors.ErrConflict):
		c.String(http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		c.String(http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.String(http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled request error")
		c.String(http.StatusInternalServerError, "Internal server error")
	}
	c.Abort()
}
