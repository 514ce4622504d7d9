package Dashboard

import (
	"context"
	"log/slog"

	"SpeedWatch/Models"
)

// EventSource delivers server-push message payloads, one call per message,
// in arrival order, until ctx ends.
type EventSource interface {
	Run(ctx context.Context, handle func(data []byte)) error
}

// LiveSubscriber feeds the violation stream into the table.
type LiveSubscriber struct {
	table  *ViolationTable
	board  *State
	source EventSource
	logger *slog.Logger
}

func NewLiveSubscriber(table *ViolationTable, source EventSource, logger *slog.Logger) *LiveSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveSubscriber{table: table, board: table.board, source: source, logger: logger}
}

// Run consumes the stream for the lifetime of ctx.
func (l *LiveSubscriber) Run(ctx context.Context) error {
	return l.source.Run(ctx, l.Handle)
}

// Handle decodes one message and prepends it. A bad message is dropped and
// nothing else is touched.
func (l *LiveSubscriber) Handle(data []byte) {
	record, err := Models.DecodeViolation(data)
	if err != nil {
		l.logger.Warn("dropping stream event", "err", &Models.DecodeFailure{Endpoint: "/stream", Err: err})
		l.board.updateStream(func(s *StreamStatus) { s.Dropped++ })
		return
	}
	l.table.PrependLive(record)
	l.board.updateStream(func(s *StreamStatus) { s.Received++ })
	l.logger.Debug("violation received", "plate", record.Plate, "speed", record.Speed.String())
}

// MarkConnected records that the subscription is up.
func (l *LiveSubscriber) MarkConnected() {
	l.board.updateStream(func(s *StreamStatus) { s.Connected = true })
	l.logger.Info("violation stream connected")
}

// MarkDisconnected records a lost subscription.
func (l *LiveSubscriber) MarkDisconnected() {
	l.board.updateStream(func(s *StreamStatus) {
		s.Connected = false
		s.Reconnects++
	})
	l.logger.Warn("violation stream disconnected")
}
