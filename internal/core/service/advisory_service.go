package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
	"github.com/cempulse/plant-ops/internal/pkg/metrics"
)

const (
	emptyCandidateText = "No content"
	noSuggestionsText  = "No suggestions returned"
)

const advisorGuidelines = `Guidelines:
- Provide authoritative, management-level advice.
- You may also comment on processes not strictly listed if it benefits plant health.
- If the question is vague (e.g. "how is my factory?"), give a diagnostic chosen from:
  "Factory is operating at best efficiency", "Factory is in a critical state",
  or "Factory performance is suboptimal".
- Focus on actionable recommendations: what to adjust, monitor or optimize.
- Keep it practical and executive-style.`

type advisoryService struct {
	authz     ports.ProcessAuthorizer
	generator ports.TextGenerator
	cache     ports.AdvisoryCache
	audit     ports.AuditRecorder
	log       zerolog.Logger
}

// NewAdvisoryService returns an AdvisoryService implementation.
func NewAdvisoryService(
	authz ports.ProcessAuthorizer,
	generator ports.TextGenerator,
	cache ports.AdvisoryCache,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) ports.AdvisoryService {
	return &advisoryService{
		authz:     authz,
		generator: generator,
		cache:     cache,
		audit:     audit,
		log:       log,
	}
}

// Advise authorizes the requested scope and only then contacts the generator.
// A refused scope never reaches the prompt.
func (s *advisoryService) Advise(ctx context.Context, p domain.Principal, in ports.AdvisoryInput) (*domain.Advice, error) {
	granted, err := s.authz.Authorize(p, in.Processes)
	if err != nil {
		var forbidden *domain.ForbiddenError
		if errors.As(err, &forbidden) {
			metrics.AdvisoryRequestsTotal.WithLabelValues("forbidden").Inc()
			s.audit.Record(domain.AuditEvent{
				Action:    domain.AuditProcessAccessDenied,
				Subject:   p.Subject,
				Role:      p.Role,
				Processes: forbidden.Processes,
				Detail:    "advisory",
				Timestamp: time.Now().UTC(),
			})
		}
		return nil, err
	}

	key := advisoryCacheKey(p.Role, granted, in.Message)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn().Err(err).Msg("advisory cache lookup failed")
	} else if ok {
		metrics.AdvisoryRequestsTotal.WithLabelValues("cached").Inc()
		s.recordAdvisory(p, granted, "cached")
		return cached, nil
	}

	texts, err := s.generator.Generate(ctx, buildAdvisorPrompt(p.Role, granted, in.Message))
	if err != nil {
		if errors.Is(err, domain.ErrAdvisorMisconfigured) {
			metrics.AdvisoryRequestsTotal.WithLabelValues("misconfigured").Inc()
		} else {
			metrics.AdvisoryRequestsTotal.WithLabelValues("upstream_error").Inc()
		}
		return nil, fmt.Errorf("advise: %w", err)
	}

	severity := domain.SeverityInfo
	if s.authz.IsMaster(p) {
		severity = domain.SeverityHigh
	}

	suggestions := make([]domain.Suggestion, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			text = emptyCandidateText
		}
		suggestions = append(suggestions, domain.Suggestion{Message: text, Severity: severity})
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, domain.Suggestion{Message: noSuggestionsText, Severity: domain.SeverityInfo})
	}

	advice := &domain.Advice{Role: p.Role, Processes: granted, Suggestions: suggestions}

	if err := s.cache.Set(ctx, key, advice); err != nil {
		s.log.Warn().Err(err).Msg("advisory cache store failed")
	}

	metrics.AdvisoryRequestsTotal.WithLabelValues("ok").Inc()
	s.recordAdvisory(p, granted, "generated")

	return advice, nil
}

// recordAdvisory audits every answered request, whether or not it came from the cache.
func (s *advisoryService) recordAdvisory(p domain.Principal, granted []string, source string) {
	s.audit.Record(domain.AuditEvent{
		Action:    domain.AuditAdvisoryRequested,
		Subject:   p.Subject,
		Role:      p.Role,
		Processes: granted,
		Detail:    source,
		Timestamp: time.Now().UTC(),
	})
}

func buildAdvisorPrompt(role string, processes []string, message string) string {
	var b strings.Builder
	b.WriteString("You are acting as a Cement Plant Master Advisor.\n")
	fmt.Fprintf(&b, "Your role is: %s.\n", role)
	fmt.Fprintf(&b, "You are primarily responsible for controlling and giving advice across these processes: %s.\n\n", strings.Join(processes, ", "))
	b.WriteString(advisorGuidelines)
	if message != "" {
		fmt.Fprintf(&b, "\n\nUser Question: %s", message)
	}
	return b.String()
}

func advisoryCacheKey(role string, processes []string, message string) string {
	h := sha256.New()
	h.Write([]byte(role))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(processes, ",")))
	h.Write([]byte{0})
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
