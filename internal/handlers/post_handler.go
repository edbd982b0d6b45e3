package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/models"
	"github.com/openforum/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService services.Post
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService services.Post) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPublicPostRoutes registers the post routes that need no
// authentication.
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// RegisterPostRoutes registers the authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	identity := identityFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed", err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), req.Title, req.Content, identity.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns a filtered, sorted page of posts
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, pageSize, err := pagingParams(c)
	if err != nil {
		return badRequest(c, "page and pageSize must be integers")
	}

	filter := models.PostFilter{
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	if raw := c.QueryParam("authorId"); raw != "" {
		authorID, err := intQueryParam(c, "authorId", 0)
		if err != nil || authorID < 1 {
			return badRequest(c, "authorId must be a positive integer")
		}
		id := uint(authorID)
		filter.AuthorID = &id
	}

	if filter.DateFrom, err = timeQueryParam(c, "dateFrom"); err != nil {
		return badRequest(c, "dateFrom must be an RFC 3339 timestamp")
	}
	if filter.DateTo, err = timeQueryParam(c, "dateTo"); err != nil {
		return badRequest(c, "dateTo must be an RFC 3339 timestamp")
	}

	for _, raw := range c.QueryParams()["tags"] {
		tag, err := models.ParseTagKind(raw)
		if err != nil {
			return badRequest(c, "unknown tag", err.Error())
		}
		filter.Tags = append(filter.Tags, tag)
	}

	result, err := h.postService.List(c.Request().Context(), page, pageSize, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetPost returns one post with its computed counts
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := uintPathParam(c, "id")
	if err != nil {
		return badRequest(c, "post ID must be a positive integer")
	}

	post, err := h.postService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}
