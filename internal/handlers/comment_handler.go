package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService services.Comment
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService services.Comment) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterPublicCommentRoutes registers the comment routes that need
// no authentication.
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetCommentsForPost)
}

// RegisterCommentRoutes registers the authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	identity := identityFromContext(c)

	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), postID, req.Content, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPost retrieves a page of a post's comments
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	page, pageSize, err := pagingParams(c)
	if err != nil {
		return badRequest(c, "page and pageSize must be integers")
	}

	result, err := h.commentService.GetForPost(c.Request().Context(), postID, page, pageSize, c.QueryParam("sortOrder"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
