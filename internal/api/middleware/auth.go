package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/ports"
)

// Auth verifies the session cookie and injects the principal into context.
// Every failure is the same 401; the reason never reaches the client.
func Auth(auth ports.AuthService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			principal, err := auth.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}
