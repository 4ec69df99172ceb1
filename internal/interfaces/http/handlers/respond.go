// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/pkg/apperrors"
)

// respondError translates a service error into the HTTP status its code
// maps to. Unclassified errors surface as 500 without leaking detail.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(apperrors.HTTPStatus(err), gin.H{
			"error": appErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}

// parseIDParam reads a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(value), true
}
