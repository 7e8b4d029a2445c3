package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SergioSanchezIglesias/retiros-backend/internal/apperrors"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/logger"
	"github.com/SergioSanchezIglesias/retiros-backend/internal/uuid"
)

// parsePathID validates a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic storage error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrStorage.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrStorage.Code,
			"message": apperrors.ErrStorage.Message,
		},
	})
}
