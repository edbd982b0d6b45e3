package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openforum/backend/internal/services"
)

// errorBody is the wire shape of every failure: a stable taxonomy
// code, a message, and the violated rules for validation errors. No
// internals leak past this point.
type errorBody struct {
	Code       services.Code `json:"code"`
	Message    string        `json:"message"`
	Violations []string      `json:"violations,omitempty"`
}

var statusByCode = map[services.Code]int{
	services.CodeNotFound:         http.StatusNotFound,
	services.CodeInvalidArgument:  http.StatusBadRequest,
	services.CodeUnauthorized:     http.StatusUnauthorized,
	services.CodeForbidden:        http.StatusForbidden,
	services.CodeConflict:         http.StatusConflict,
	services.CodeInvalidOperation: http.StatusUnprocessableEntity,
	services.CodeInternal:         http.StatusInternalServerError,
}

// respondError renders a service error with its mapped HTTP status.
func respondError(c echo.Context, err error) error {
	if svcErr, ok := services.AsError(err); ok {
		status, found := statusByCode[svcErr.Code]
		if !found {
			status = http.StatusInternalServerError
		}
		return c.JSON(status, echo.Map{"error": errorBody{
			Code:       svcErr.Code,
			Message:    svcErr.Message,
			Violations: svcErr.Violations,
		}})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": errorBody{
		Code:    services.CodeInternal,
		Message: "internal server error",
	}})
}

// badRequest renders a transport-level InvalidArgument.
func badRequest(c echo.Context, message string, violations ...string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": errorBody{
		Code:       services.CodeInvalidArgument,
		Message:    message,
		Violations: violations,
	}})
}
