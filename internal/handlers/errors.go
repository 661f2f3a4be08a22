package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNoTransactionBlock):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNoInputDetected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrExtraction), errors.Is(err, apperrors.ErrExternal):
		return http.StatusBadGateway
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code != 0 {
			return appErr.Code
		}
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error. Server-side failures get a generic
// message; client-side ones carry the error text.
func respondError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(msg, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
