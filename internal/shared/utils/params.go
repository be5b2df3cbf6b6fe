package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/masterly-ai/masterly/internal/shared/errors"
)

// ParseUUIDParam parses and validates a UUID from a URL path parameter.
// entityName is used in error messages (e.g., "material").
func ParseUUIDParam(c *gin.Context, paramName, entityName string) (string, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", errors.NewValidationError(fmt.Sprintf("invalid %s ID format, expected a UUID", entityName))
	}

	return parsed.String(), nil
}
