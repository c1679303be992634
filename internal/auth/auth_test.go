package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	a := NewAuthenticator("admin123", "test-key", "geoface-attendance", time.Hour)

	token, err := a.Login("admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)

	claims, err := a.Parse(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "geoface-attendance", claims.Issuer)

	_, err = a.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogin_EmptyPasswordDisablesGate(t *testing.T) {
	a := NewAuthenticator("", "test-key", "", time.Hour)

	_, err := a.Login("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestParse_Rejects(t *testing.T) {
	a := NewAuthenticator("admin123", "test-key", "geoface-attendance", time.Hour)
	token, err := a.Issue(RoleAdmin)
	require.NoError(t, err)

	// Другой ключ подписи
	other := NewAuthenticator("admin123", "other-key", "geoface-attendance", time.Hour)
	_, err = other.Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Другой издатель
	foreign := NewAuthenticator("admin123", "test-key", "someone-else", time.Hour)
	_, err = foreign.Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Истекший токен
	a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = a.Parse(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminAuth(t *testing.T) {
	// Подготовка
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	a := NewAuthenticator("admin123", "test-key", "", time.Hour)
	router := gin.New()
	router.GET("/admin", AdminAuth(a, logger), func(c *gin.Context) {
		_, ok := c.Get(ClaimsKey)
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	admin, err := a.Issue(RoleAdmin)
	require.NoError(t, err)
	guest, err := a.Issue("guest")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"wrong role", "Bearer " + guest.AccessToken, http.StatusForbidden},
		{"admin", "Bearer " + admin.AccessToken, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}
