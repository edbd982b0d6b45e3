package services

import "fmt"

// validatePaging enforces the shared pagination contract: page >= 1,
// 1 <= pageSize <= max. An out-of-range page is not an error; it just
// yields an empty page.
func validatePaging(page, pageSize, max int) *Error {
	var violations []string
	if page < 1 {
		violations = append(violations, "page must be at least 1")
	}
	if pageSize < 1 {
		violations = append(violations, "pageSize must be at least 1")
	}
	if pageSize > max {
		violations = append(violations, fmt.Sprintf("pageSize must not exceed %d", max))
	}
	if len(violations) > 0 {
		return Invalid("invalid pagination parameters", violations...)
	}
	return nil
}
