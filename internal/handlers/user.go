package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/services"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	userService services.User
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.User) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetProfile)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetProfile returns a user with read-time activity aggregates
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "user ID must be a positive integer")
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUserPosts returns a page of the user's posts
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	userID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "user ID must be a positive integer")
	}

	page, pageSize, err := pagingParams(c)
	if err != nil {
		return badRequest(c, "page and pageSize must be integers")
	}

	result, err := h.userService.GetUserPosts(c.Request().Context(), userID, page, pageSize, c.QueryParam("sortOrder"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
