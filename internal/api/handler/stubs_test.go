package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cempulse/plant-ops/internal/api/middleware"
	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	verifyFn func(token string) (domain.Principal, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Verify(token string) (domain.Principal, error) {
	return s.verifyFn(token)
}

type stubProcessService struct {
	visibleFn func(p domain.Principal) ([]domain.Process, error)
	detailFn  func(p domain.Principal, id string) (*ports.ProcessDetail, error)
}

func (s *stubProcessService) Visible(p domain.Principal) ([]domain.Process, error) {
	return s.visibleFn(p)
}

func (s *stubProcessService) Detail(p domain.Principal, id string) (*ports.ProcessDetail, error) {
	return s.detailFn(p, id)
}

type stubAdvisoryService struct {
	adviseFn func(ctx context.Context, p domain.Principal, in ports.AdvisoryInput) (*domain.Advice, error)
}

func (s *stubAdvisoryService) Advise(ctx context.Context, p domain.Principal, in ports.AdvisoryInput) (*domain.Advice, error) {
	return s.adviseFn(ctx, p, in)
}

type stubApprovalService struct {
	requestFn func(ctx context.Context, p domain.Principal, in ports.CreateApprovalInput) (*domain.ApprovalRequest, error)
	listFn    func(ctx context.Context, p domain.Principal, status string) ([]*domain.ApprovalRequest, error)
	decideFn  func(ctx context.Context, p domain.Principal, in ports.DecideApprovalInput) (*domain.ApprovalRequest, error)
}

func (s *stubApprovalService) Request(ctx context.Context, p domain.Principal, in ports.CreateApprovalInput) (*domain.ApprovalRequest, error) {
	return s.requestFn(ctx, p, in)
}

func (s *stubApprovalService) List(ctx context.Context, p domain.Principal, status string) ([]*domain.ApprovalRequest, error) {
	return s.listFn(ctx, p, status)
}

func (s *stubApprovalService) Decide(ctx context.Context, p domain.Principal, in ports.DecideApprovalInput) (*domain.ApprovalRequest, error) {
	return s.decideFn(ctx, p, in)
}

var qualityEngineer = domain.Principal{
	Subject:          "Quality Engineer",
	Role:             "Quality Engineer",
	AllowedProcesses: []string{"quality-control", "raw-material-analysis"},
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds a request context, optionally carrying a principal
// as the Auth middleware would.
func newJSONContext(e *echo.Echo, method, target, body string, principal *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		middleware.SetPrincipal(c, *principal)
	}
	return c, rec
}
