package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/services"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService services.Auth
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.Auth) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// Login handles authentication by email or username
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	result, err := h.authService.RefreshToken(c.Request().Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
