package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/masterly-ai/masterly/internal/shared/constants"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

const testUserID = "6f1c2a4e-3b7d-4c55-9a0e-2d8f4b1c7e90"

type stubVerifier struct {
	tokens map[string]string
}

func (s *stubVerifier) UserID(token string) (string, error) {
	if userID, ok := s.tokens[token]; ok {
		return userID, nil
	}
	return "", errors.New("invalid token")
}

func newAuthTestEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/me", handler, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyUserID))
	})
	return engine
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{tokens: map[string]string{
		"cookie-token": testUserID,
		"header-token": "header-user",
	}}, "sb-access-token", logger.NewNopLogger())
	engine := newAuthTestEngine(m.RequireAuth())

	tests := []struct {
		name       string
		cookie     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "cookie token", cookie: "cookie-token", wantStatus: http.StatusOK, wantBody: testUserID},
		{name: "bearer token", header: "Bearer header-token", wantStatus: http.StatusOK, wantBody: "header-user"},
		{name: "cookie wins over header", cookie: "cookie-token", header: "Bearer header-token", wantStatus: http.StatusOK, wantBody: testUserID},
		{name: "missing token", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token header-token", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sb-access-token", Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(&stubVerifier{tokens: map[string]string{"good": testUserID}}, "sb-access-token", logger.NewNopLogger())
	engine := newAuthTestEngine(m.OptionalAuth())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer good")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testUserID, w.Body.String())
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRedactedHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/lemonsqueezy/webhook", nil)
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("X-Signature", "abc123")

	headers := redactedHeaders(req)
	joined := ""
	for _, h := range headers {
		joined += h + "\n"
	}
	assert.NotContains(t, joined, "secret")
	assert.NotContains(t, joined, "abc123")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS([]string{"https://app.masterly.ai"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.masterly.ai")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.masterly.ai", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
