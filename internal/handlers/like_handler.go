package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService services.Like
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService services.Like) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
	g.DELETE("/posts/:id/like", h.Unlike)
	g.GET("/posts/:id/like", h.GetLikeStatus)
}

// ToggleLike likes the post, or unlikes it when already liked
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	identity := identityFromContext(c)

	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	status, err := h.likeService.Toggle(c.Request().Context(), postID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// Unlike removes the authenticated user's like from the post
func (h *LikeHandler) Unlike(c echo.Context) error {
	identity := identityFromContext(c)

	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	status, err := h.likeService.Unlike(c.Request().Context(), postID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// GetLikeStatus reports whether the caller likes the post, plus the count
func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	identity := identityFromContext(c)

	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	liked, err := h.likeService.HasLiked(c.Request().Context(), postID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.likeService.CountForPost(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"is_liked": liked, "like_count": count})
}
