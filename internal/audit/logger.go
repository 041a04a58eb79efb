package audit

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes events to the application log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("audit")}
}

func (s *LogSink) Write(_ context.Context, ev Event) error {
	s.log.Info(ev.Action,
		zap.String("entity", ev.Entity),
		zap.String("entity_id", ev.EntityID),
		zap.Any("metadata", ev.Metadata),
		zap.Time("at", ev.At),
	)
	return nil
}
