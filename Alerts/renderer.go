package Alerts

import (
	"context"
	"log/slog"
	"time"

	"SpeedWatch/Dashboard"
	"SpeedWatch/Models"
)

// Sink receives a copy of every notification, e.g. a push channel.
type Sink interface {
	Deliver(ctx context.Context, n *Models.Notification) error
}

// Renderer shows notifications in the dashboard alert box, journals them
// and mirrors them to any registered sinks. Journal and sink failures are
// logged and never block the alert box.
type Renderer struct {
	board   *Dashboard.State
	journal *Journal
	sinks   []Sink
	logger  *slog.Logger
	now     func() time.Time
}

func NewRenderer(board *Dashboard.State, journal *Journal, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{board: board, journal: journal, logger: logger, now: time.Now}
}

// AddSink registers an extra delivery channel.
func (r *Renderer) AddSink(sink Sink) {
	r.sinks = append(r.sinks, sink)
}

func (r *Renderer) Notify(ctx context.Context, level Models.NotificationLevel, source, message string) {
	r.board.ShowNotice(Dashboard.Notice{
		Level:   level,
		Source:  source,
		Message: message,
		At:      r.now(),
	})

	n := &Models.Notification{Level: level, Source: source, Message: message}
	if r.journal != nil {
		if err := r.journal.Record(ctx, n); err != nil {
			r.logger.Error("failed to journal notification", "err", err)
		}
	}
	for _, sink := range r.sinks {
		if err := sink.Deliver(ctx, n); err != nil {
			r.logger.Warn("notification sink failed", "err", err)
		}
	}
	r.logger.Info("operator notified", "level", level, "source", source, "message", message)
}
