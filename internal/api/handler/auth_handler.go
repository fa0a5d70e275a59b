package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

// CookieConfig describes the session cookie. MaxAge should match the token TTL.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// userResponse renders {"user": null} when User is nil.
type userResponse struct {
	User *domain.UserSummary `json:"user"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	// Bind accepts an empty body as a zero value; a login without a payload is malformed.
	var req loginRequest
	if c.Request().ContentLength == 0 {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Bad request"})
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Bad request"})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
		}
		return err
	}

	c.SetCookie(h.sessionCookie(result.Token, int(h.cookie.MaxAge/time.Second)))
	user := result.User
	return c.JSON(http.StatusOK, userResponse{User: &user})
}

// Me reports the user behind the session cookie.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  userResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		token = cookie.Value
	}

	principal, err := h.authService.Verify(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, userResponse{})
	}

	user := principal.Summary()
	return c.JSON(http.StatusOK, userResponse{User: &user})
}

// Logout expires the session cookie. The token itself stays valid until exp.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
