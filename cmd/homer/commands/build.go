package commands

import (
	"context"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/pipeline"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output file path (overrides config)"`
	Theme  string `help:"Theme to render with (overrides config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output = b.Output
	}
	if b.Theme != "" {
		cfg.Templates.Theme = b.Theme
	}

	store, cleanup, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = pipeline.New(cfg, nil, store).Run(context.Background())
	return err
}
