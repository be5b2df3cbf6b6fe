package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/masterly-ai/masterly/internal/shared/constants"
	apperrors "github.com/masterly-ai/masterly/internal/shared/errors"
	"github.com/masterly-ai/masterly/internal/shared/logger"
	"github.com/masterly-ai/masterly/internal/shared/utils"
)

// TokenVerifier resolves an access token to the user it was issued for.
type TokenVerifier interface {
	UserID(token string) (string, error)
}

type AuthMiddleware struct {
	verifier   TokenVerifier
	cookieName string
	logger     logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, cookieName string, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:   verifier,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		userID, err := m.verifier.UserID(token)
		if err != nil {
			m.logVerifyFailure(c, err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and otherwise
// lets the request through. Handlers behind it decide how to reject anonymous
// callers.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := m.verifier.UserID(token)
		if err != nil {
			m.logger.Debugw("ignoring invalid access token", "error", err)
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// logVerifyFailure skips expected failures such as expired tokens and flags
// forged ones as security events.
func (m *AuthMiddleware) logVerifyFailure(c *gin.Context, err error) {
	if !apperrors.ShouldLogAuthError(err) {
		m.logger.Debugw("access token rejected", "error", err)
		return
	}
	m.logger.Warnw("failed to verify token",
		"error", err,
		"security_event", apperrors.IsSecurityEvent(err),
		"client_ip", c.ClientIP(),
		"path", c.Request.URL.Path,
	)
}

// extractToken reads the session cookie first, then the bearer header.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if token := utils.GetTokenFromCookie(c, m.cookieName); token != "" {
		return token
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
