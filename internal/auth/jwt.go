// Package auth закрывает админку статическим паролем и выдает JWT на сессию администратора.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin - единственная роль в системе
const RoleAdmin = "admin"

var (
	// ErrInvalidPassword - пароль администратора не совпал
	ErrInvalidPassword = errors.New("invalid admin password")
	// ErrInvalidToken - токен не прошел проверку
	ErrInvalidToken = errors.New("invalid token")
)

// Claims - полезная нагрузка токена
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token - выданный токен и срок его действия
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Authenticator проверяет пароль и подписывает токены HS256
type Authenticator struct {
	password   string
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

func NewAuthenticator(password, signingKey, issuer string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		password:   password,
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Login сверяет пароль за постоянное время и выдает токен администратора
func (a *Authenticator) Login(password string) (Token, error) {
	if a.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return Token{}, ErrInvalidPassword
	}
	return a.Issue(RoleAdmin)
}

// Issue подписывает токен с заданной ролью
func (a *Authenticator) Issue(role string) (Token, error) {
	now := a.now()
	exp := now.Add(a.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   role,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
	if err != nil {
		return Token{}, fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return Token{AccessToken: signed, ExpiresAt: exp}, nil
}

// Parse проверяет подпись, срок и издателя токена
func (a *Authenticator) Parse(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.signingKey, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if a.issuer != "" && claims.Issuer != a.issuer {
		return Claims{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	return *claims, nil
}
