package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"media-access/service"
)

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   gin.H{"message": message},
	})
}

// respondError maps a service error class to a status code. Unclassified
// errors are logged with full detail and reported as a generic failure.
func respondError(c *gin.Context, err error) {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   gin.H{"message": message},
	})
}
