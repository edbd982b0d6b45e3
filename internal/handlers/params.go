package handlers

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/models"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// pagingParams reads page/pageSize with their defaults. Range checks
// belong to the services; malformed numbers are rejected here.
func pagingParams(c echo.Context) (page, pageSize int, err error) {
	page, err = intQueryParam(c, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err = intQueryParam(c, "pageSize", defaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}

func intQueryParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// uintPathParam parses a numeric path segment such as a post ID.
func uintPathParam(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// timeQueryParam parses an RFC 3339 timestamp query parameter.
func timeQueryParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// identityFromContext returns the identity the JWT middleware stored.
func identityFromContext(c echo.Context) *models.UserIdentity {
	identity, _ := c.Get("identity").(*models.UserIdentity)
	return identity
}
