package CronJobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"SpeedWatch/Dashboard"
	"SpeedWatch/Models"
)

// StatsSource serves aggregate counters.
type StatsSource interface {
	Stats(ctx context.Context) (Models.AggregateStats, error)
}

// StatsPoller refreshes the dashboard counters on a schedule
type StatsPoller struct {
	cronScheduler  *cron.Cron
	source         StatsSource
	board          *Dashboard.State
	schedule       string
	runImmediately bool
	logger         *slog.Logger
	ctx            context.Context

	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// NewStatsPoller creates a poller for the given cron schedule, e.g. "@every 2s".
func NewStatsPoller(source StatsSource, board *Dashboard.State, schedule string, runImmediately bool, logger *slog.Logger) *StatsPoller {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsPoller{
		cronScheduler:  cron.New(),
		source:         source,
		board:          board,
		schedule:       schedule,
		runImmediately: runImmediately,
		logger:         logger,
		ctx:            context.Background(),
	}
}

// Start schedules the refresh and, if requested, runs one tick right away.
func (s *StatsPoller) Start(ctx context.Context) error {
	s.ctx = ctx

	_, err := s.cronScheduler.AddFunc(s.schedule, func() {
		s.Refresh(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling stats poll: %w", err)
	}

	s.cronScheduler.Start()
	s.logger.Info("stats poller started", "schedule", s.schedule)

	if s.runImmediately {
		go s.Refresh(ctx)
	}
	return nil
}

// Stop halts the schedule and waits for running ticks.
func (s *StatsPoller) Stop() {
	if s.cronScheduler != nil {
		<-s.cronScheduler.Stop().Done()
		s.logger.Info("stats poller stopped")
	}
}

// Refresh runs one tick. A failed tick changes nothing and is not retried.
// Ticks may overlap; a response is applied only if no later-issued tick has
// already been applied.
func (s *StatsPoller) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	stats, err := s.source.Stats(ctx)
	if err != nil {
		s.logger.Debug("stats tick failed", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		s.logger.Debug("discarding superseded stats", "seq", seq, "applied", s.applied)
		return
	}
	s.applied = seq
	s.board.ReplaceStats(stats, time.Now())
}
