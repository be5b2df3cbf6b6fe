package utils

import (
	"github.com/gin-gonic/gin"
)

// GetTokenFromCookie returns the named cookie's value, or "" when it is
// absent. The bearer header fallback is handled in the auth middleware.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}
