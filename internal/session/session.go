package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/moneymaze/moneymaze/internal/apperr"
)

// CookieName is the single session transport: an HTTP-only signed cookie.
const CookieName = "token"

const contextKey = "userID"

type Manager struct {
	Secret []byte
	TTL    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{Secret: secret, TTL: ttl}
}

// Issue signs a token binding the user id for the configured TTL.
func (m *Manager) Issue(userID uint, username string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      time.Now().Unix(),
		"exp":      exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the bound user id.
func (m *Manager) Verify(raw string) (uint, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil || !t.Valid {
		return 0, apperr.Auth("Unauthorized")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperr.Auth("Unauthorized")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, apperr.Auth("Unauthorized")
	}
	return uint(sub), nil
}

func (m *Manager) Cookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// ExpiredCookie returns a cookie that clears the session on the client.
func (m *Manager) ExpiredCookie() *http.Cookie {
	return m.Cookie("", time.Now().Add(-time.Hour))
}

// RequireAuth gates protected routes: it extracts the session cookie,
// verifies it and puts the authenticated user id into the echo context.
func (m *Manager) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "No token"})
		}

		userID, err := m.Verify(cookie.Value)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthorized"})
		}

		c.Set(contextKey, userID)
		return next(c)
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get(contextKey).(uint)
	if !ok {
		return 0, apperr.Auth("Unauthorized")
	}
	return id, nil
}
