package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/pkg/token"
)

type stubCredentialStore struct {
	records []domain.CredentialRecord
	err     error
}

func (s *stubCredentialStore) FindByCredentials(_ context.Context, username, password string) (*domain.CredentialRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.records {
		// The stub keeps the clear password in PasswordHash.
		if r.Username == username && r.PasswordHash == password {
			rec := r
			return &rec, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func newTestAuthService(t *testing.T, now *time.Time, audit *recordingAudit) *AuthService {
	t.Helper()
	codec, err := token.NewCodec([]byte("secret"), token.WithClock(func() time.Time { return *now }))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	store := &stubCredentialStore{records: []domain.CredentialRecord{
		{Username: "Shift Supervisor", PasswordHash: "password", Role: "Shift Supervisor",
			AllowedProcesses: []string{"raw-material-extraction", "preheater-precalciner", "kiln-operation", "packing-dispatch"}},
		{Username: "Operations Head", PasswordHash: "password", Role: "master"},
	}}
	return NewAuthService(store, codec, audit, 0, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	audit := &recordingAudit{}
	svc := newTestAuthService(t, &now, audit)

	res, err := svc.Login(context.Background(), "Shift Supervisor", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if !res.ExpiresAt.Equal(now.Add(DefaultTokenTTL)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(DefaultTokenTTL), res.ExpiresAt)
	}
	if res.User.Username != "Shift Supervisor" || res.User.Role != "Shift Supervisor" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if len(res.User.Allowed) != 4 {
		t.Fatalf("expected four allowed processes, got %v", res.User.Allowed)
	}

	principal, err := svc.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if principal.Subject != "Shift Supervisor" || !principal.Allows("kiln-operation") {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if got := audit.actions(); len(got) != 1 || got[0] != domain.AuditLoginSucceeded {
		t.Fatalf("expected login_succeeded audit event, got %v", got)
	}
}

func TestAuthService_Login_MasterHasEmptyAllowed(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestAuthService(t, &now, &recordingAudit{})

	res, err := svc.Login(context.Background(), "Operations Head", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.Allowed == nil || len(res.User.Allowed) != 0 {
		t.Fatalf("expected empty allowed list, got %#v", res.User.Allowed)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	audit := &recordingAudit{}
	svc := newTestAuthService(t, &now, audit)

	tests := []struct{ username, password string }{
		{"Shift Supervisor", "wrong"},
		{"shift supervisor", "password"},
		{"Nobody", "password"},
		{"", ""},
	}
	for _, tt := range tests {
		if _, err := svc.Login(context.Background(), tt.username, tt.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%q/%q: expected ErrInvalidCredentials, got %v", tt.username, tt.password, err)
		}
	}
	if got := audit.actions(); len(got) != len(tests) || got[0] != domain.AuditLoginFailed {
		t.Fatalf("expected one login_failed event per attempt, got %v", got)
	}
}

func TestAuthService_Login_StoreFailureIsWrapped(t *testing.T) {
	codec, _ := token.NewCodec([]byte("secret"))
	storeErr := errors.New("disk on fire")
	svc := NewAuthService(&stubCredentialStore{err: storeErr}, codec, &recordingAudit{}, time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "a", "b")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not look like bad credentials")
	}
}

func TestAuthService_Verify_CollapsesReasons(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	svc := newTestAuthService(t, &now, &recordingAudit{})

	res, err := svc.Login(context.Background(), "Shift Supervisor", "password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	tampered := res.Token[:len(res.Token)-2] + "xx"
	if tampered == res.Token {
		tampered = res.Token[:len(res.Token)-2] + "yy"
	}

	for name, raw := range map[string]string{"missing": "", "garbage": "abc.def", "tampered": tampered} {
		if _, err := svc.Verify(raw); err != domain.ErrUnauthenticated {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}

	now = now.Add(DefaultTokenTTL + time.Second)
	if _, err := svc.Verify(res.Token); err != domain.ErrUnauthenticated {
		t.Fatalf("expired: expected ErrUnauthenticated, got %v", err)
	}
}
