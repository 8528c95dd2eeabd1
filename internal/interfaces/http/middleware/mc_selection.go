package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MC selection keys
const (
	SelectedMcKey     = "selected_mc_number_id"
	McSelectionHeader = "X-MC-Number-Id"
	McSelectionCookie = "currentMcNumberId"
)

// McSelectionMiddleware reads the caller's MC number selection from the
// X-MC-Number-Id header or, failing that, the currentMcNumberId cookie and
// stores the parsed id in the gin context. The header wins when both are
// present. Selection is optional; authorization against the caller's grant
// set happens in the application layer, not here.
func McSelectionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(McSelectionHeader)
		if raw == "" {
			if cookie, err := c.Cookie(McSelectionCookie); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			c.Next()
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_INPUT",
					"message": "Invalid MC number selection",
				},
			})
			return
		}

		c.Set(SelectedMcKey, id)
		c.Next()
	}
}

// GetSelectedMc returns the MC number id selected for this request, or nil
// when the caller did not narrow the scope.
func GetSelectedMc(c *gin.Context) *uuid.UUID {
	if v, exists := c.Get(SelectedMcKey); exists {
		if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
			return &id
		}
	}
	return nil
}
