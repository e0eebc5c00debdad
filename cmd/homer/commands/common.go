package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/history"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"homer.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Generate the start page once"`
	Init    InitCmd    `cmd:"" help:"Initialize configuration, templates and a sample links file"`
	Check   CheckCmd   `cmd:"" help:"Parse the links file and report problems without generating"`
	Serve   ServeCmd   `cmd:"" help:"Generate, then serve the page and rebuild on changes"`
	History HistoryCmd `cmd:"" help:"List recent generation runs (requires history.path)"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// openHistory opens the run-history store when configured. The returned
// cleanup is a no-op when history is disabled.
func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	if cfg.History.Path == "" {
		return nil, func() {}, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close history store", "error", err)
		}
	}
	return store, cleanup, nil
}
