package service

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

var masterDefaults = []string{"raw", "kiln", "clinker", "cement", "dispatch"}

func newTestAuthorizer(match domain.RoleMatch) *ProcessAuthorizer {
	return NewProcessAuthorizer("master", masterDefaults, match)
}

func TestProcessAuthorizer_Scoped(t *testing.T) {
	authz := newTestAuthorizer(domain.RoleMatchFold)
	supervisor := domain.Principal{
		Subject:          "Shift Supervisor",
		Role:             "Shift Supervisor",
		AllowedProcesses: []string{"raw-material-extraction", "preheater-precalciner", "kiln-operation", "packing-dispatch"},
	}

	tests := []struct {
		name       string
		requested  []string
		want       []string
		wantDenied []string
	}{
		{"empty request yields own list", nil, supervisor.AllowedProcesses, nil},
		{"subset is granted as requested", []string{"kiln-operation", "raw-material-extraction"}, []string{"kiln-operation", "raw-material-extraction"}, nil},
		{"duplicates are kept in the grant", []string{"kiln-operation", "kiln-operation"}, []string{"kiln-operation", "kiln-operation"}, nil},
		{"outsider is refused", []string{"kiln-operation", "quality-control"}, nil, []string{"quality-control"}},
		{"refusals listed once in request order", []string{"energy-emission", "kiln-operation", "quality-control", "energy-emission"}, nil, []string{"energy-emission", "quality-control"}},
		{"identifiers are case sensitive", []string{"Kiln-Operation"}, nil, []string{"Kiln-Operation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authz.Authorize(supervisor, tt.requested)
			if tt.wantDenied != nil {
				var forbidden *domain.ForbiddenError
				if !errors.As(err, &forbidden) {
					t.Fatalf("expected ForbiddenError, got %v", err)
				}
				if !slices.Equal(forbidden.Processes, tt.wantDenied) {
					t.Fatalf("denied = %v, want %v", forbidden.Processes, tt.wantDenied)
				}
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("ForbiddenError must match ErrForbidden")
				}
				if got != nil {
					t.Fatalf("expected no grant on refusal, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("granted = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessAuthorizer_ScopedGrantIsSubsetOfAllowed(t *testing.T) {
	authz := newTestAuthorizer(domain.RoleMatchFold)
	allowed := []string{"cement-storage", "packing-dispatch"}
	p := domain.Principal{Subject: "Dispatch Coordinator", Role: "Dispatch Coordinator", AllowedProcesses: allowed}

	universe := []string{"cement-storage", "packing-dispatch", "kiln-operation", "quality-control"}
	// Every subset of the universe, as a bitmask.
	for mask := 0; mask < 1<<len(universe); mask++ {
		var requested []string
		for i, id := range universe {
			if mask&(1<<i) != 0 {
				requested = append(requested, id)
			}
		}
		granted, err := authz.Authorize(p, requested)
		if err != nil {
			continue
		}
		for _, id := range granted {
			if !slices.Contains(allowed, id) {
				t.Fatalf("request %v granted %q outside allowed list", requested, id)
			}
		}
	}
}

func TestProcessAuthorizer_EmptyAllowedNonMaster(t *testing.T) {
	authz := newTestAuthorizer(domain.RoleMatchFold)
	p := domain.Principal{Subject: "visitor", Role: "Visitor"}

	got, err := authz.Authorize(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil grant, got %#v", got)
	}

	if _, err := authz.Authorize(p, []string{"kiln-operation"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestProcessAuthorizer_Master(t *testing.T) {
	authz := newTestAuthorizer(domain.RoleMatchFold)

	for _, role := range []string{"master", "Master", "MASTER"} {
		p := domain.Principal{Subject: "Operations Head", Role: role}
		if !authz.IsMaster(p) {
			t.Fatalf("%q should be master under fold matching", role)
		}

		got, err := authz.Authorize(p, nil)
		if err != nil || !slices.Equal(got, masterDefaults) {
			t.Fatalf("%q empty request: got %v, %v", role, got, err)
		}

		requested := []string{"kiln-operation", "not-in-any-list"}
		got, err = authz.Authorize(p, requested)
		if err != nil || !slices.Equal(got, requested) {
			t.Fatalf("%q explicit request: got %v, %v", role, got, err)
		}
	}
}

func TestProcessAuthorizer_MasterGrantIsACopy(t *testing.T) {
	authz := newTestAuthorizer(domain.RoleMatchFold)
	p := domain.Principal{Role: "master"}

	got, _ := authz.Authorize(p, nil)
	got[0] = "mutated"

	again, _ := authz.Authorize(p, nil)
	if again[0] != "raw" {
		t.Fatalf("defaults were mutated through a returned slice: %v", again)
	}
}

func TestProcessAuthorizer_ExactMatchPolicy(t *testing.T) {
	authz := newTestAuthorizer(domain.RoleMatchExact)

	if authz.IsMaster(domain.Principal{Role: "Master"}) {
		t.Fatalf("exact policy must not treat Master as master")
	}
	if !authz.IsMaster(domain.Principal{Role: "master"}) {
		t.Fatalf("exact policy must treat master as master")
	}

	_, err := authz.Authorize(domain.Principal{Role: "Master"}, []string{"kiln-operation"})
	var forbidden *domain.ForbiddenError
	if !errors.As(err, &forbidden) || strings.Join(forbidden.Processes, ",") != "kiln-operation" {
		t.Fatalf("expected refusal of kiln-operation, got %v", err)
	}
}

func TestForbiddenError_Message(t *testing.T) {
	err := &domain.ForbiddenError{Processes: []string{"kiln-operation", "quality-control"}}
	if err.Error() != "Unauthorized process access: kiln-operation, quality-control" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
