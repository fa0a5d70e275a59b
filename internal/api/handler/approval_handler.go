package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

// ApprovalHandler handles HTTP requests for analysis approval requests.
type ApprovalHandler struct {
	service ports.ApprovalService
}

func NewApprovalHandler(service ports.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

type createApprovalRequest struct {
	ProcessID string `json:"process_id" validate:"required,max=128"`
	Analysis  string `json:"analysis" validate:"required,max=8000"`
}

type listApprovalsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
}

type decideApprovalRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Note     string `json:"note" validate:"max=2000"`
}

type approvalListResponse struct {
	Approvals []*domain.ApprovalRequest `json:"approvals"`
}

// Create handles POST /api/approvals.
//
// @Summary      Submit an analysis for approval
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        body  body      createApprovalRequest  true  "Process and analysis"
// @Success      201   {object}  domain.ApprovalRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/approvals [post]
func (h *ApprovalHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, err := h.service.Request(c.Request().Context(), principal, ports.CreateApprovalInput{
		ProcessID: req.ProcessID,
		Analysis:  req.Analysis,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/approvals.
//
// @Summary      List approval requests for visible processes
// @Tags         approvals
// @Produce      json
// @Param        status  query     string  false  "pending, approved or rejected"
// @Success      200     {object}  approvalListResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/approvals [get]
func (h *ApprovalHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var q listApprovalsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	approvals, err := h.service.List(c.Request().Context(), principal, q.Status)
	if err != nil {
		return respondError(c, err)
	}
	if approvals == nil {
		approvals = []*domain.ApprovalRequest{}
	}
	return c.JSON(http.StatusOK, approvalListResponse{Approvals: approvals})
}

// Decide handles POST /api/approvals/:id/decision. Mounted behind RBAC.
//
// @Summary      Approve or reject a pending request
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Approval request id"
// @Param        body  body      decideApprovalRequest  true  "Decision"
// @Success      200   {object}  domain.ApprovalRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/approvals/{id}/decision [post]
func (h *ApprovalHandler) Decide(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req decideApprovalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	decided, err := h.service.Decide(c.Request().Context(), principal, ports.DecideApprovalInput{
		ID:       c.Param("id"),
		Decision: req.Decision,
		Note:     req.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, decided)
}
