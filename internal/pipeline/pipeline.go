// Package pipeline orchestrates one generation run: read the links file,
// build the document, render it through the template set and write the page.
// It is shared by the build and serve commands.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/history"
	"git.home.luguber.info/inful/homer/internal/metrics"
	"git.home.luguber.info/inful/homer/internal/model"
	"git.home.luguber.info/inful/homer/internal/parser"
	"git.home.luguber.info/inful/homer/internal/render"
	"git.home.luguber.info/inful/homer/internal/theme"
)

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Groups     int
	Links      int
	LineErrors []parser.LineError
	Duration   time.Duration
	Output     string
}

// Runner executes pipeline runs for one configuration.
type Runner struct {
	cfg      *config.Config
	recorder metrics.Recorder
	store    *history.Store
}

// New creates a runner. recorder may be nil (noop); store may be nil
// (history disabled).
func New(cfg *config.Config, recorder metrics.Recorder, store *history.Store) *Runner {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Runner{cfg: cfg, recorder: recorder, store: store}
}

// Run executes one full generation pass. Per-line parse errors are recovered
// and reported in the result; missing input, missing templates and output
// write failures are fatal.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	result, err := r.run(ctx, runID, start)
	if err != nil {
		r.recorder.IncRunOutcome(metrics.OutcomeFailed)
		r.record(ctx, runID, start, nil, string(metrics.OutcomeFailed))
		return nil, err
	}

	r.recorder.ObserveRunDuration(result.Duration)
	r.recorder.IncRunOutcome(metrics.OutcomeSuccess)
	r.recorder.SetDocumentStats(result.Groups, result.Links)
	r.recorder.AddLineErrors(len(result.LineErrors))
	r.record(ctx, runID, start, result, string(metrics.OutcomeSuccess))

	slog.Info("Generation complete",
		"run_id", runID,
		"output", result.Output,
		"groups", result.Groups,
		"links", result.Links,
		"line_errors", len(result.LineErrors),
		"duration", result.Duration)
	return result, nil
}

func (r *Runner) run(ctx context.Context, runID string, start time.Time) (*Result, error) {
	templates, err := theme.Resolve(r.cfg.Templates.Directory, r.cfg.Templates.Theme)
	if err != nil {
		return nil, err
	}

	doc, lineErrs, err := r.parse()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	if err := render.NewWriter(r.cfg, templates).Write(doc); err != nil {
		return nil, err
	}
	r.recorder.ObserveStageDuration("render", time.Since(renderStart))

	return &Result{
		RunID:      runID,
		Groups:     doc.TotalGroups(),
		Links:      doc.TotalLinks(),
		LineErrors: lineErrs,
		Duration:   time.Since(start),
		Output:     r.cfg.Output,
	}, nil
}

func (r *Runner) parse() (*model.Document, []parser.LineError, error) {
	parseStart := time.Now()

	f, err := os.Open(r.cfg.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("input file not found: %s", r.cfg.Input)
		}
		return nil, nil, fmt.Errorf("open input %s: %w", r.cfg.Input, err)
	}
	defer func() { _ = f.Close() }()

	doc := model.NewDocument()
	p := parser.New(doc)
	if err := p.ProcessReader(f); err != nil {
		return nil, nil, err
	}

	r.recorder.ObserveStageDuration("parse", time.Since(parseStart))
	return doc, p.Errors(), nil
}

// record persists the run outcome when history is enabled. Failures here are
// logged, not propagated; history must never break a build.
func (r *Runner) record(ctx context.Context, runID string, start time.Time, result *Result, outcome string) {
	if r.store == nil {
		return
	}
	run := history.Run{
		ID:        runID,
		StartedAt: start,
		Duration:  time.Since(start),
		Output:    r.cfg.Output,
		Outcome:   outcome,
	}
	if result != nil {
		run.Groups = result.Groups
		run.Links = result.Links
		run.LineErrors = len(result.LineErrors)
	}
	if err := r.store.Record(ctx, run); err != nil {
		slog.Warn("Failed to record run history", "run_id", runID, "error", err)
	}
}
