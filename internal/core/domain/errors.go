package domain

import (
	"errors"
	"strconv"
	"strings"
)

// Token verification failures. Callers outside the auth service only ever see
// ErrUnauthenticated; the specific reason is kept for internal logging.
var (
	ErrMalformedToken  = errors.New("malformed token")
	ErrBadSignature    = errors.New("bad token signature")
	ErrTokenExpired    = errors.New("token expired")
	ErrUnauthenticated = errors.New("unauthenticated")
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingSecret = errors.New("token signing secret is not configured")
var ErrForbidden = errors.New("access forbidden")

var ErrProcessNotFound = errors.New("process not found")
var ErrApprovalNotFound = errors.New("approval request not found")
var ErrInvalidDecision = errors.New("invalid approval decision")
var ErrApprovalClosed = errors.New("approval request already decided")

var (
	ErrAdvisorMisconfigured = errors.New("advisor is not configured")
	ErrAdvisorUnavailable   = errors.New("advisor unavailable")
)

// ForbiddenError lists exactly the process identifiers a principal asked for
// but is not allowed to see. It matches ErrForbidden with errors.Is.
type ForbiddenError struct {
	Processes []string
}

func (e *ForbiddenError) Error() string {
	return "Unauthorized process access: " + strings.Join(e.Processes, ", ")
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// UpstreamError carries the status code returned by the generative text provider.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return "AI provider returned status " + strconv.Itoa(e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return ErrAdvisorUnavailable
}
