package auth

import "github.com/gin-gonic/gin"

const (
	ctxUserID = "userID"
	ctxRole   = "userRole"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetRole returns the authenticated user's role, or "" when unauthenticated.
func GetRole(c *gin.Context) Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(Role); ok {
			return r
		}
	}
	return ""
}

// SetIdentity stores the caller's identity on the gin context.
func SetIdentity(c *gin.Context, userID string, role Role) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
}
