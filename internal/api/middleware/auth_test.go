package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthValidToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"username": "lan",
		"role":     "courier",
		"user_id":  "u-1",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/deliveries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := Auth(testSecret)(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !nextCalled {
		t.Fatalf("next handler not called")
	}
	if c.Get("username") != "lan" {
		t.Errorf("username claim = %v", c.Get("username"))
	}
	if c.Get("role") != "courier" {
		t.Errorf("role claim = %v", c.Get("role"))
	}
	if c.Get("user_id") != "u-1" {
		t.Errorf("user_id claim = %v", c.Get("user_id"))
	}
}

func TestAuthMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/deliveries", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(testSecret)(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/deliveries", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(testSecret)(func(c echo.Context) error { return nil })

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthWrongSecret(t *testing.T) {
	token := signedToken(t, "other-secret", jwt.MapClaims{
		"username": "lan",
		"role":     "courier",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/deliveries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(testSecret)(func(c echo.Context) error { return nil })

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"username": "lan",
		"role":     "courier",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/deliveries", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(testSecret)(func(c echo.Context) error { return nil })

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
