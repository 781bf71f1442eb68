package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/six_jars_app/internal/apperrors"
	portssvc "github.com/SscSPs/six_jars_app/internal/core/ports/services"
	"github.com/SscSPs/six_jars_app/internal/core/services"
	"github.com/SscSPs/six_jars_app/internal/dto"
	"github.com/SscSPs/six_jars_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler signs users in with Google and issues application tokens.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade, tokenService portssvc.TokenSvcFacade) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		tokenService:       tokenService,
	}
}

func registerAuthRoutes(r *gin.Engine, container *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(container.GoogleOAuthHandler, container.TokenService)

	auth := r.Group("/api/v1/auth")
	{
		auth.GET("/google/login-url", h.LoginURLGoogle)
		auth.POST("/google/exchange-code", h.ExchangeCodeGoogle)
	}
}

// LoginURLGoogle godoc
// @Summary Google sign-in URL
// @Description Returns the consent URL and the state value the frontend should check on return
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginURLResponse
// @Router /auth/google/login-url [get]
func (h *GoogleOAuthHandler) LoginURLGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to start sign-in")
		return
	}
	c.JSON(http.StatusOK, dto.LoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// ExchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an access token
// @Description Exchanges the code with Google, validates the ID token and returns an application JWT.
// @Description Unverified Google accounts receive a token but cannot read or change a ledger.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid Google ID token"
// @Failure 504 {object} dto.ErrorResponse "Google unavailable"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		respondError(c, apperrors.NewInternalServerError("Failed to retrieve ID token from Google."), "Failed to retrieve ID token from Google.")
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		respondError(c, err, "Invalid Google ID token")
		return
	}

	id := services.IdentityFromGooglePayload(payload)
	if id.UserID == "" {
		logger.ErrorContext(ctx, "Subject missing from Google ID token payload")
		respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), "Invalid Google ID token")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, id)
	if err != nil {
		respondError(c, err, "Failed to issue access token")
		return
	}
	logger.InfoContext(ctx, "User signed in with Google",
		slog.String("user_id", id.UserID), slog.Bool("verified", id.Verified))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, Verified: id.Verified})
}
