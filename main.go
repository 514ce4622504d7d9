package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"SpeedWatch/Alerts"
	"SpeedWatch/Apis"
	"SpeedWatch/Controllers"
	"SpeedWatch/CronJobs"
	"SpeedWatch/Dashboard"
	"SpeedWatch/FiberConfig"
	"SpeedWatch/Models"
)

func main() {
	cfg, err := Models.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.SlogLevel(),
			TimeFormat: "15:04:05",
		}),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("speedwatch stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg Models.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := Models.Connect(cfg.JournalDSN)
	if err != nil {
		return err
	}
	client, err := Apis.NewClient(cfg.BackendURL, logger)
	if err != nil {
		return err
	}

	board := Dashboard.NewState(cfg.UnknownPlaceholder, client.ImageURL)
	journal := Alerts.NewJournal(db)
	renderer := Alerts.NewRenderer(board, journal, logger)
	if cfg.FCMCredentialsFile != "" {
		push, err := Alerts.NewPushSink(ctx, cfg.FCMCredentialsFile, cfg.FCMToken)
		if err != nil {
			logger.Warn("push notifications disabled", "err", err)
		} else {
			renderer.AddSink(push)
		}
	}
	if cfg.SlackToken != "" {
		renderer.AddSink(Alerts.NewSlackSink(cfg.SlackToken, cfg.SlackChannel))
	}

	table := Dashboard.NewViolationTable(board, logger)
	video := Dashboard.NewVideoController(board, client, renderer, logger)
	search := Dashboard.NewSuggestions(board, client, logger)

	poller := CronJobs.NewStatsPoller(client, board, cfg.StatsSchedule, true, logger)
	if err := poller.Start(ctx); err != nil {
		return err
	}
	defer poller.Stop()

	// History loads before the stream opens; a wholesale load after it
	// would erase streamed rows.
	go func() {
		_ = table.LoadHistory(ctx, client)

		subscription := client.Subscribe(cfg.StreamMaxBackoff)
		live := Dashboard.NewLiveSubscriber(table, subscription, logger)
		subscription.OnConnect(live.MarkConnected)
		subscription.OnDisconnect(live.MarkDisconnected)
		if err := live.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("violation stream ended", "err", err)
		}
	}()

	app := FiberConfig.NewApp(Controllers.NewDashboardController(board, video, search, journal, logger), logger)
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logger.Error("console shutdown failed", "err", err)
		}
	}()

	logger.Info("operator console listening", "addr", cfg.ListenAddr, "backend", cfg.BackendURL)
	return app.Listen(cfg.ListenAddr)
}
