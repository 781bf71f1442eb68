package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP statuses. Only client-caused errors keep their
// message; everything else answers with fallback.
func statusFor(err error, fallback string) (int, string) {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.Code, appErr.Message
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrUnverified):
		return http.StatusForbidden, "Email address is not verified"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrLedgerNotLoaded):
		return http.StatusServiceUnavailable, "Ledger is not available, please retry"
	case errors.Is(err, apperrors.ErrAIQuotaExceeded):
		return http.StatusTooManyRequests, "AI quota exceeded, please try again later"
	case errors.Is(err, apperrors.ErrAIParse), errors.Is(err, apperrors.ErrExternal):
		return http.StatusBadGateway, fallback
	default:
		return http.StatusInternalServerError, fallback
	}
}

// respondError logs err at a level matching its status and writes the error body.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, msg := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": msg})
}

// identity returns the caller's identity or answers 401.
func identity(c *gin.Context) (domain.Identity, bool) {
	id, ok := middleware.GetIdentityFromContext(c)
	if !ok || id.UserID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Identity{}, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
