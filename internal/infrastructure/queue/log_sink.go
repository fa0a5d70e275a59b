package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cempulse/plant-ops/internal/core/domain"
)

// LogSink writes audit events to the structured log. It is the sink when no
// database is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "audit").Logger()}
}

func (s *LogSink) InsertEvent(_ context.Context, event *domain.AuditEvent) error {
	s.log.Info().
		Str("action", string(event.Action)).
		Str("subject", event.Subject).
		Str("role", event.Role).
		Strs("processes", event.Processes).
		Str("detail", event.Detail).
		Time("at", event.Timestamp).
		Msg("audit")
	return nil
}
