package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/ports"
	"github.com/cempulse/plant-ops/internal/pkg/metrics"
)

// GateConfig configures AccessGate.
type GateConfig struct {
	// Prefixes are the protected path prefixes. A prefix matches itself and
	// anything below it, so "/monitor" covers "/monitor/kiln" but not "/monitoring".
	Prefixes   []string
	CookieName string
	LoginPath  string
}

// AccessGate redirects unauthenticated requests for protected pages to the
// login page, carrying the original path in the redirect query parameter.
// It only checks that a valid session exists; per-process rules apply at the
// API.
func AccessGate(auth ports.AuthService, cfg GateConfig) echo.MiddlewareFunc {
	prefixes := make([]string, 0, len(cfg.Prefixes))
	for _, p := range cfg.Prefixes {
		p = strings.TrimRight(strings.TrimSpace(p), "/")
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			if !isProtected(reqPath, prefixes) {
				return next(c)
			}

			if cookie, err := c.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				if _, err := auth.Verify(cookie.Value); err == nil {
					metrics.GateDecisionsTotal.WithLabelValues("allowed").Inc()
					return next(c)
				}
			}

			metrics.GateDecisionsTotal.WithLabelValues("redirected").Inc()
			return c.Redirect(http.StatusTemporaryRedirect, loginURL(cfg.LoginPath, reqPath))
		}
	}
}

// isProtected cleans the path first so that dot segments cannot walk into a
// protected prefix unnoticed.
func isProtected(reqPath string, prefixes []string) bool {
	cleaned := path.Clean("/" + reqPath)
	for _, p := range prefixes {
		if cleaned == p || strings.HasPrefix(cleaned, p+"/") {
			return true
		}
	}
	return false
}

func loginURL(loginPath, original string) string {
	return loginPath + "?" + url.Values{"redirect": {original}}.Encode()
}
