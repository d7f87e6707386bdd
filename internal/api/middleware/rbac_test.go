package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		role     interface{}
		allowed  []string
		wantNext bool
	}{
		{"operator allowed", "operator", []string{"operator"}, true},
		{"courier allowed among several", "courier", []string{"operator", "courier"}, true},
		{"courier forbidden", "courier", []string{"operator"}, false},
		{"missing role", nil, []string{"operator"}, false},
		{"non-string role", 42, []string{"operator"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/transport-orders", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}

			nextCalled := false
			handler := RBAC(tt.allowed...)(func(c echo.Context) error {
				nextCalled = true
				return c.NoContent(http.StatusOK)
			})

			err := handler(c)
			if tt.wantNext {
				if err != nil {
					t.Fatalf("handler: %v", err)
				}
			} else {
				he, ok := err.(*echo.HTTPError)
				if !ok || he.Code != http.StatusForbidden {
					t.Fatalf("expected 403, got %v", err)
				}
			}
			if nextCalled != tt.wantNext {
				t.Errorf("nextCalled = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}
