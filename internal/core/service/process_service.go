package service

import (
	"fmt"
	"math"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
)

// seriesLength is the number of hourly samples shown per parameter.
const seriesLength = 24

type processService struct {
	catalog ports.ProcessCatalog
	authz   ports.ProcessAuthorizer
}

// NewProcessService returns a ProcessService backed by the static catalog.
func NewProcessService(catalog ports.ProcessCatalog, authz ports.ProcessAuthorizer) ports.ProcessService {
	return &processService{catalog: catalog, authz: authz}
}

// Visible returns the catalog entries the principal may see, in stage order.
// Master sees the whole catalog.
func (s *processService) Visible(p domain.Principal) ([]domain.Process, error) {
	all := s.catalog.All()
	if s.authz.IsMaster(p) {
		return all, nil
	}

	granted, err := s.authz.Authorize(p, nil)
	if err != nil {
		return nil, fmt.Errorf("visible processes: %w", err)
	}
	allowed := make(map[string]struct{}, len(granted))
	for _, id := range granted {
		allowed[id] = struct{}{}
	}

	visible := make([]domain.Process, 0, len(granted))
	for _, proc := range all {
		if _, ok := allowed[proc.ID]; ok {
			visible = append(visible, proc)
		}
	}
	return visible, nil
}

// Detail authorizes before looking the process up, so an unknown identifier
// outside the principal's list is reported as forbidden.
func (s *processService) Detail(p domain.Principal, processID string) (*ports.ProcessDetail, error) {
	if _, err := s.authz.Authorize(p, []string{processID}); err != nil {
		return nil, err
	}

	proc, ok := s.catalog.Get(processID)
	if !ok {
		return nil, domain.ErrProcessNotFound
	}

	series := make([]domain.ParameterSeries, 0, len(proc.Parameters))
	for i, param := range proc.Parameters {
		series = append(series, syntheticSeries(param, i))
	}
	return &ports.ProcessDetail{Process: proc, Series: series}, nil
}

// syntheticSeries produces a deterministic hourly wave that stays inside the
// parameter's range.
func syntheticSeries(param domain.Parameter, phase int) domain.ParameterSeries {
	mid := (param.Min + param.Max) / 2
	amp := (param.Max - param.Min) / 4

	points := make([]domain.SeriesPoint, seriesLength)
	for h := range seriesLength {
		v := mid + amp*math.Sin(float64(h)/3+float64(phase))
		points[h] = domain.SeriesPoint{
			Timestamp: fmt.Sprintf("%02d:00", h),
			Value:     math.Round(v*100) / 100,
		}
	}
	return domain.ParameterSeries{Parameter: param.Name, Unit: param.Unit, Points: points}
}
