package httpmiddleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestBucket(capacity, perMinute int) (*TokenBucket, *time.Time) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC)
	l := NewTokenBucket(capacity, perMinute, logger)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestTokenBucket_Allow(t *testing.T) {
	// Подготовка
	l, now := newTestBucket(2, 6)

	// Действие и проверки
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Другой IP считается отдельно
	assert.True(t, l.Allow("10.0.0.2"))

	// 6 в минуту: за 15 секунд набегает один токен
	*now = now.Add(15 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// Запас не растет выше capacity
	*now = now.Add(time.Hour)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestTokenBucket_EvictsRecoveredKeys(t *testing.T) {
	l, now := newTestBucket(1, 60)

	assert.True(t, l.Allow("10.0.0.1"))
	*now = now.Add(time.Minute)
	assert.True(t, l.Allow("10.0.0.2"))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.state, 1)
	assert.Contains(t, l.state, "10.0.0.2")
}

func TestTokenBucket_GinMiddleware(t *testing.T) {
	// Подготовка
	gin.SetMode(gin.TestMode)
	l, _ := newTestBucket(1, 1)
	router := gin.New()
	router.POST("/checkins", l.GinMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/checkins", nil)
		req.RemoteAddr = "192.0.2.10:51000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Действие
	first := send()
	second := send()

	// Проверки
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, second.Body.String())
}
