package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		deps       map[string]Pinger
		wantStatus int
		wantBody   string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", map[string]Pinger{
			"mongodb": pingFunc(func(context.Context) error { return nil }),
			"redis":   pingFunc(func(context.Context) error { return nil }),
		}, http.StatusOK, "ok"},
		{"one down", map[string]Pinger{
			"mongodb": pingFunc(func(context.Context) error { return nil }),
			"redis":   pingFunc(func(context.Context) error { return errors.New("connection refused") }),
		}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tt.deps).Readiness(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tt.wantBody {
				t.Fatalf("expected status %q, got %q", tt.wantBody, body.Status)
			}
			if len(body.Dependencies) != len(tt.deps) {
				t.Fatalf("expected %d dependency entries, got %d", len(tt.deps), len(body.Dependencies))
			}
		})
	}
}
