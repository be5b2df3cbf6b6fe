package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/masterly-ai/masterly/internal/shared/constants"
	"github.com/masterly-ai/masterly/internal/shared/logger"
)

func newRateLimitEngine(rl *RateLimiter, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	})
	r.Use(rl.Limit())
	r.POST("/action", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doAction(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/action", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	rl := NewRateLimiter(client, 2, time.Minute, logger.NewNopLogger())

	alice := newRateLimitEngine(rl, "alice")
	assert.Equal(t, http.StatusOK, doAction(alice).Code)
	assert.Equal(t, http.StatusOK, doAction(alice).Code)

	w := doAction(alice)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded, please try again later"}`, w.Body.String())

	// Another caller has its own counter.
	bob := newRateLimitEngine(rl, "bob")
	assert.Equal(t, http.StatusOK, doAction(bob).Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	rl := NewRateLimiter(client, 1, time.Minute, logger.NewNopLogger())
	r := newRateLimitEngine(rl, "")

	mr.Close()
	assert.Equal(t, http.StatusOK, doAction(r).Code)
	assert.Equal(t, http.StatusOK, doAction(r).Code)
}

func TestRateLimiter_Nil(t *testing.T) {
	var rl *RateLimiter
	r := newRateLimitEngine(rl, "alice")
	assert.Equal(t, http.StatusOK, doAction(r).Code)
}
