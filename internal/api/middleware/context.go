package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

const principalKey = "principal"

// SetPrincipal stores the verified principal on the request context.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
