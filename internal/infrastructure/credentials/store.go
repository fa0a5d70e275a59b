// Package credentials holds the static table of plant accounts.
//
// Records come from a YAML file in production. Development and tests may use
// the built-in demo accounts, which are hashed when the table is built.
package credentials

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"slices"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// DemoPassword is the shared password of every demo account.
const DemoPassword = "password"

// File is the on-disk layout of CREDENTIALS_FILE.
type File struct {
	Users []domain.CredentialRecord `yaml:"users"`
}

// Store implements ports.CredentialStore over an immutable slice of records.
type Store struct {
	records   []domain.CredentialRecord
	dummyHash []byte
}

// NewStore validates records and returns a Store. Order is preserved; on
// duplicate usernames the first record whose password verifies wins.
func NewStore(records []domain.CredentialRecord) (*Store, error) {
	if len(records) == 0 {
		return nil, errors.New("credentials: no records")
	}

	cost := bcrypt.DefaultCost
	for i, r := range records {
		if r.Username == "" || r.Role == "" {
			return nil, fmt.Errorf("credentials: record %d: username and role are required", i)
		}
		c, err := bcrypt.Cost([]byte(r.PasswordHash))
		if err != nil {
			return nil, fmt.Errorf("credentials: record %d (%s): %w", i, r.Username, err)
		}
		if i == 0 {
			cost = c
		}
	}

	// Unknown usernames are compared against this hash so that a miss costs
	// about as much as a wrong password.
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, fmt.Errorf("credentials: dummy hash: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword(random, cost)
	if err != nil {
		return nil, fmt.Errorf("credentials: dummy hash: %w", err)
	}

	return &Store{records: slices.Clone(records), dummyHash: dummy}, nil
}

// FindByCredentials scans the table in order. Usernames match exactly.
func (s *Store) FindByCredentials(_ context.Context, username, password string) (*domain.CredentialRecord, error) {
	seen := false
	for i := range s.records {
		r := &s.records[i]
		if r.Username != username {
			continue
		}
		seen = true
		if bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password)) == nil {
			rec := *r
			rec.AllowedProcesses = slices.Clone(r.AllowedProcesses)
			return &rec, nil
		}
	}
	if !seen {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
	}
	return nil, domain.ErrInvalidCredentials
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// LoadFile reads records from a YAML file.
func LoadFile(path string) ([]domain.CredentialRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	return f.Users, nil
}

// Plant process groups used by the demo accounts.
var (
	rawProcesses       = []string{"raw-material-extraction", "crushing-homogenization", "raw-meal-grinding", "raw-meal-homogenization"}
	kilnProcesses      = []string{"preheater-precalciner", "kiln-operation", "clinker-cooling"}
	storageProcesses   = []string{"clinker-storage", "cement-storage"}
	finishingProcesses = []string{"cement-grinding", "packing-dispatch"}
	qaProcesses        = []string{"quality-control"}
	energyProcesses    = []string{"energy-emission"}
)

type demoAccount struct {
	name    string
	allowed []string
}

// demoAccounts use the position title as both username and role.
var demoAccounts = []demoAccount{
	{"Operations Head", slices.Concat(rawProcesses, kilnProcesses, storageProcesses, finishingProcesses, qaProcesses, energyProcesses)},
	{"Plant Manager", slices.Concat(rawProcesses, kilnProcesses, storageProcesses, finishingProcesses)},
	{"Maintenance Lead", []string{"crushing-homogenization", "raw-meal-grinding", "kiln-operation", "clinker-cooling", "cement-grinding"}},
	{"Shift Supervisor", []string{"raw-material-extraction", "preheater-precalciner", "kiln-operation", "packing-dispatch"}},
	{"Quality Engineer", qaProcesses},
	{"Dispatch Coordinator", []string{"cement-storage", "packing-dispatch"}},
	{"Energy Analyst", energyProcesses},
	{"Production Engineer", slices.Concat(rawProcesses, kilnProcesses)},
	{"Safety Officer", []string{"kiln-operation", "clinker-cooling", "energy-emission"}},
	{"Logistics Manager", []string{"cement-storage", "packing-dispatch"}},
}

// DemoRecords returns the demo accounts with DemoPassword hashed at cost.
// All accounts share one hash.
func DemoRecords(cost int) ([]domain.CredentialRecord, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	records := make([]domain.CredentialRecord, 0, len(demoAccounts))
	for _, a := range demoAccounts {
		records = append(records, domain.CredentialRecord{
			Username:         a.name,
			PasswordHash:     string(hash),
			Role:             a.name,
			AllowedProcesses: slices.Clone(a.allowed),
		})
	}
	return records, nil
}
