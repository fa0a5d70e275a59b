package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/ports"
)

// AdvisoryHandler serves the generative AI advisory endpoint.
type AdvisoryHandler struct {
	service ports.AdvisoryService
}

func NewAdvisoryHandler(service ports.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{service: service}
}

type advisoryRequest struct {
	Processes []string `json:"processes" validate:"max=32,dive,required,max=128"`
	Message   string   `json:"message" validate:"max=4000"`
}

// Advise handles POST /api/genai. An empty body scopes the request to the
// caller's own processes; a malformed one is rejected.
//
// @Summary      Ask the process advisor
// @Tags         advisory
// @Accept       json
// @Produce      json
// @Param        body  body      advisoryRequest  false  "Requested processes and question"
// @Success      200   {object}  domain.Advice
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/genai [post]
func (h *AdvisoryHandler) Advise(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req advisoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	advice, err := h.service.Advise(c.Request().Context(), principal, ports.AdvisoryInput{
		Processes: req.Processes,
		Message:   req.Message,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, advice)
}
