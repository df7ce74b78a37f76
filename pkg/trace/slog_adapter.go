package trace

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter writes events to an slog.Logger at Debug level, or Warn for
// errors.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("id", event.ID),
		slog.String("op", event.Operation.String()),
		slog.String("outcome", event.Outcome.String()),
		slog.Duration("duration", event.Duration),
	}
	if event.MPN != "" {
		attrs = append(attrs, slog.String("mpn", event.MPN))
	}
	if event.Candidate != "" {
		attrs = append(attrs, slog.String("candidate", event.Candidate))
	}

	level := slog.LevelDebug
	switch {
	case event.Classification != nil:
		c := event.Classification
		attrs = append(attrs,
			slog.String("owner", c.Owner),
			slog.String("type", c.Type),
		)
		if c.Series != "" {
			attrs = append(attrs, slog.String("series", c.Series))
		}
		if c.Package != "" {
			attrs = append(attrs, slog.String("package", c.Package))
		}
	case event.Replacement != nil:
		r := event.Replacement
		attrs = append(attrs,
			slog.Bool("replaceable", r.Replaceable),
			slog.String("stage", r.Stage),
			slog.String("reason", r.Reason),
		)
		if len(r.Unmet) > 0 {
			attrs = append(attrs, slog.String("unmet", strings.Join(r.Unmet, "; ")))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error.Message))
	}

	a.logger.LogAttrs(context.Background(), level, "decision", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
