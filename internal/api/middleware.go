package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ownerHeader = "X-User-ID"
	ownerKey    = "owner_id"
)

// RequireOwner rejects requests without an owner identity. Authentication
// happens upstream; this only reads the identity it forwarded.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := strings.TrimSpace(c.GetHeader(ownerHeader))
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing " + ownerHeader + " header"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}
