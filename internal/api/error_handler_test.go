package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized"), http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"router 404", echo.ErrNotFound, http.StatusNotFound, `{"error":"Not Found"}`},
		{"forbidden", fmt.Errorf("wrap: %w", &domain.ForbiddenError{Processes: []string{"kiln-operation", "packing-dispatch"}}), http.StatusForbidden, `{"error":"Unauthorized process access: kiln-operation, packing-dispatch"}`},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"closed", domain.ErrApprovalClosed, http.StatusConflict, `{"error":"approval request already decided"}`},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h := NewHTTPErrorHandler(zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/api/processes", nil)
			rec := httptest.NewRecorder()

			h(tt.err, e.NewContext(req, rec))

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.body {
				t.Fatalf("unexpected body: %s", got)
			}
			if strings.Contains(rec.Body.String(), "disk on fire") {
				t.Fatalf("internal error leaked")
			}
		})
	}
}
