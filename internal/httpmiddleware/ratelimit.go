package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenBucket ограничивает частоту запросов с одного IP. Состояние хранится в памяти процесса.
type TokenBucket struct {
	capacity int
	rate     int
	now      func() time.Time
	logger   *logrus.Logger

	mu    sync.Mutex
	state map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

// NewTokenBucket создает лимитер на capacity запросов подряд и perMinute запросов в минуту.
// При capacity <= 0 запас равен perMinute.
func NewTokenBucket(capacity, perMinute int, logger *logrus.Logger) *TokenBucket {
	if perMinute <= 0 {
		perMinute = 1
	}
	if capacity <= 0 {
		capacity = perMinute
	}
	return &TokenBucket{
		capacity: capacity,
		rate:     perMinute,
		now:      time.Now,
		logger:   logger,
		state:    make(map[string]*bucket),
	}
}

// GinMiddleware отклоняет запрос с 429, если у IP закончились токены
func (l *TokenBucket) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.Allow(ip) {
			l.logger.WithFields(logrus.Fields{"ip": ip, "path": c.FullPath()}).Warn("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// Allow забирает токен ключа и сообщает, был ли он
func (l *TokenBucket) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.state[key]
	if !ok {
		l.evictFull(now)
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true
	}

	refill := int(now.Sub(b.last).Minutes() * float64(l.rate))
	if refill > 0 {
		b.tokens = min(b.tokens+refill, l.capacity)
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// evictFull удаляет ключи, которые уже успели восстановить весь запас.
// Такой ключ ничем не отличается от нового.
func (l *TokenBucket) evictFull(now time.Time) {
	full := time.Duration(float64(l.capacity) / float64(l.rate) * float64(time.Minute))
	for key, b := range l.state {
		if now.Sub(b.last) >= full {
			delete(l.state, key)
		}
	}
}
