package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

// ProcessHandler serves the plant process catalog.
type ProcessHandler struct {
	service ports.ProcessService
}

func NewProcessHandler(service ports.ProcessService) *ProcessHandler {
	return &ProcessHandler{service: service}
}

type processListResponse struct {
	Processes []domain.Process `json:"processes"`
}

type processDetailResponse struct {
	Process domain.Process           `json:"process"`
	Series  []domain.ParameterSeries `json:"series"`
}

// List handles GET /api/processes.
//
// @Summary      List visible processes
// @Tags         processes
// @Produce      json
// @Success      200  {object}  processListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/processes [get]
func (h *ProcessHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	processes, err := h.service.Visible(principal)
	if err != nil {
		return respondError(c, err)
	}
	if processes == nil {
		processes = []domain.Process{}
	}
	return c.JSON(http.StatusOK, processListResponse{Processes: processes})
}

// Get handles GET /api/processes/:id.
//
// @Summary      Get a process with its recent parameter series
// @Tags         processes
// @Produce      json
// @Param        id   path      string  true  "Process id (e.g. kiln-operation)"
// @Success      200  {object}  processDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/processes/{id} [get]
func (h *ProcessHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Detail(principal, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, processDetailResponse{
		Process: detail.Process,
		Series:  detail.Series,
	})
}
