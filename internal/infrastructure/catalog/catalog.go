// Package catalog serves the static table of plant stages embedded in the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

//go:embed processes.yaml
var embedded []byte

// Catalog implements ports.ProcessCatalog. It is read-only after construction.
type Catalog struct {
	processes []domain.Process
	byID      map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	var processes []domain.Process
	if err := yaml.Unmarshal(embedded, &processes); err != nil {
		return nil, fmt.Errorf("parse process catalog: %w", err)
	}
	return New(processes)
}

// New builds a catalog ordered by stage. Identifiers must be unique.
func New(processes []domain.Process) (*Catalog, error) {
	sorted := slices.Clone(processes)
	slices.SortStableFunc(sorted, func(a, b domain.Process) int { return a.Stage - b.Stage })

	byID := make(map[string]int, len(sorted))
	for i, p := range sorted {
		if p.ID == "" {
			return nil, fmt.Errorf("process catalog: entry %d has no id", i)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("process catalog: duplicate id %q", p.ID)
		}
		byID[p.ID] = i
	}
	return &Catalog{processes: sorted, byID: byID}, nil
}

// All returns every process in stage order. The slice is a copy.
func (c *Catalog) All() []domain.Process {
	return slices.Clone(c.processes)
}

func (c *Catalog) Get(id string) (domain.Process, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Process{}, false
	}
	return c.processes[i], true
}

// IDs lists every process identifier in stage order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.processes))
	for i, p := range c.processes {
		ids[i] = p.ID
	}
	return ids
}
