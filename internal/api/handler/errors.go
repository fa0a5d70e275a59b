package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps a domain error to its HTTP status and client-safe message.
// ok is false for errors no handler anticipates; those become a logged 500.
func StatusFor(err error) (code int, msg string, ok bool) {
	var forbidden *domain.ForbiddenError
	var upstream *domain.UpstreamError

	switch {
	case errors.As(err, &forbidden):
		return http.StatusForbidden, forbidden.Error(), true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthorized", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials", true
	case errors.Is(err, domain.ErrProcessNotFound):
		return http.StatusNotFound, "process not found", true
	case errors.Is(err, domain.ErrApprovalNotFound):
		return http.StatusNotFound, "approval request not found", true
	case errors.Is(err, domain.ErrInvalidDecision):
		return http.StatusBadRequest, "decision must be approved or rejected", true
	case errors.Is(err, domain.ErrApprovalClosed):
		return http.StatusConflict, "approval request already decided", true
	case errors.Is(err, domain.ErrAdvisorMisconfigured):
		return http.StatusInternalServerError, "Server misconfiguration: missing AI key", true
	case errors.As(err, &upstream):
		return http.StatusBadGateway, upstream.Error(), true
	case errors.Is(err, domain.ErrAdvisorUnavailable):
		return http.StatusBadGateway, "Failed to fetch AI insights", true
	}
	return http.StatusInternalServerError, "internal server error", false
}

// respondError renders known domain errors and hands anything else to the
// central error handler.
func respondError(c echo.Context, err error) error {
	if code, msg, ok := StatusFor(err); ok {
		return c.JSON(code, errorResponse{Error: msg})
	}
	return err
}
