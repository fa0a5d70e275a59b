package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		validToken: "good",
		principal:  domain.Principal{Subject: "Quality Engineer", Role: "Quality Engineer", AllowedProcesses: []string{"quality-control"}},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/processes", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "good"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub, "auth_token")(func(c echo.Context) error {
		called = true
		p, ok := PrincipalFrom(c)
		if !ok || p.Subject != "Quality Engineer" || !p.Allows("quality-control") {
			t.Fatalf("principal not set: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty cookie", &http.Cookie{Name: "auth_token", Value: ""}},
		{"bad token", &http.Cookie{Name: "auth_token", Value: "forged"}},
		{"other cookie name", &http.Cookie{Name: "session", Value: "good"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/genai", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth(&stubAuthService{validToken: "good"}, "auth_token")(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
