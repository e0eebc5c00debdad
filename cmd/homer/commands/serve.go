package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/metrics"
	"git.home.luguber.info/inful/homer/internal/pipeline"
	"git.home.luguber.info/inful/homer/internal/server"
	"git.home.luguber.info/inful/homer/internal/watch"
)

// ServeCmd implements the 'serve' command: build once, then serve the page
// and rebuild whenever the links file or templates change.
type ServeCmd struct {
	Port     int    `short:"p" help:"HTTP port (overrides config)"`
	Metrics  bool   `help:"Expose Prometheus metrics at /metrics (overrides config)"`
	Interval string `help:"Periodic rebuild interval, e.g. 15m (overrides config)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}
	if s.Metrics {
		cfg.Serve.Metrics = true
	}
	if s.Interval != "" {
		cfg.Serve.RebuildInterval = s.Interval
	}

	interval, err := cfg.Serve.RebuildIntervalDuration()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	recorder, metricsHandler := setupMetrics(cfg)

	store, cleanup, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := pipeline.New(cfg, recorder, store)

	// Initial build. A failure is reported but does not kill serve mode; the
	// next change or tick retries.
	if _, err := runner.Run(ctx); err != nil {
		slog.Error("Initial generation failed", "error", err)
	}

	watcher, err := watch.New(cfg.Input, cfg.Templates.Directory)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()
	go watcher.Run(ctx)

	rebuilds := make(chan struct{}, 1)
	go forwardRequests(ctx, watcher.Requests(), rebuilds)

	if interval > 0 {
		stop, err := startPeriodicRebuild(interval, rebuilds)
		if err != nil {
			return err
		}
		defer stop()
	}

	go rebuildWorker(ctx, runner, rebuilds)

	return server.New(cfg.Serve.Port, cfg.Output, metricsHandler).Run(ctx)
}

// setupMetrics wires a Prometheus recorder and /metrics handler when metrics
// are enabled; otherwise runs with the noop recorder and no endpoint.
func setupMetrics(cfg *config.Config) (metrics.Recorder, http.Handler) {
	if !cfg.Serve.Metrics {
		return metrics.NoopRecorder{}, nil
	}
	reg := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), metrics.Handler(reg)
}

func forwardRequests(ctx context.Context, from <-chan struct{}, to chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-from:
			requestRebuild(to)
		}
	}
}

func requestRebuild(rebuilds chan struct{}) {
	select {
	case rebuilds <- struct{}{}:
	default:
	}
}

// startPeriodicRebuild schedules interval-based rebuild requests so the
// generated timestamp stays fresh even without file changes.
func startPeriodicRebuild(interval time.Duration, rebuilds chan struct{}) (func(), error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { requestRebuild(rebuilds) }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	sched.Start()
	slog.Info("Periodic rebuild enabled", "interval", interval)

	stop := func() {
		if err := sched.Shutdown(); err != nil {
			slog.Warn("Failed to stop scheduler", "error", err)
		}
	}
	return stop, nil
}

func rebuildWorker(ctx context.Context, runner *pipeline.Runner, rebuilds <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuilds:
			slog.Info("Change detected; regenerating page")
			if _, err := runner.Run(ctx); err != nil {
				slog.Warn("Regeneration failed", "error", err)
			}
		}
	}
}
