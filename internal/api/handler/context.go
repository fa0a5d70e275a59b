package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/api/middleware"
	"github.com/cempulse/plant-ops/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Its absence means the route was mounted without Auth; fail closed.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.Subject == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return p, nil
}
