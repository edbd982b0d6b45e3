package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/services"
)

// ModerationHandler handles HTTP requests for the moderation surface
type ModerationHandler struct {
	moderationService services.Moderation
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(moderationService services.Moderation) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// RegisterModerationRoutes registers moderator-only routes
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.POST("/posts/:id/tag", h.TagPost)
	g.DELETE("/posts/:id/tag", h.UntagPost)
	g.GET("/posts/tagged", h.ListTagged)
	g.GET("/posts/:id/history", h.History)
}

// TagPost marks a post as misleading information
func (h *ModerationHandler) TagPost(c echo.Context) error {
	identity := identityFromContext(c)

	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	result, err := h.moderationService.TagPost(c.Request().Context(), postID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// UntagPost removes a post's active tag
func (h *ModerationHandler) UntagPost(c echo.Context) error {
	identity := identityFromContext(c)

	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	result, err := h.moderationService.UntagPost(c.Request().Context(), postID, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ListTagged returns the tagged-post review queue
func (h *ModerationHandler) ListTagged(c echo.Context) error {
	page, pageSize, err := pagingParams(c)
	if err != nil {
		return badRequest(c, "page and pageSize must be integers")
	}

	result, err := h.moderationService.ListTagged(c.Request().Context(), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// History returns the tag rows a post currently holds
func (h *ModerationHandler) History(c echo.Context) error {
	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	tags, err := h.moderationService.History(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}
