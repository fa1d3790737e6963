package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authdto "github.com/johnquangdev/meeting-scribe/internal/adapter/dto/auth"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(service *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{
		service: service,
		logger:  logger,
	}
}

// Signup registers a new account
// POST /v1/auth/signup
func (h *Auth) Signup(c echo.Context) error {
	var req authdto.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Signup(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccessStatus(h.logger, c, http.StatusCreated, result)
}

// Login authenticates by email and password
// POST /v1/auth/login
func (h *Auth) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// Me returns the authenticated user's profile
// GET /v1/auth/me
func (h *Auth) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	user, err := h.service.Me(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, user)
}

// Refresh rotates the refresh token and issues a new token pair
// POST /v1/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	var req authdto.RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	tokens, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, tokens)
}

// Logout revokes the session bound to the refresh token
// POST /v1/auth/logout
func (h *Auth) Logout(c echo.Context) error {
	var req authdto.LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"message": "logged out"})
}
