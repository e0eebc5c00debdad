package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/model"
	"git.home.luguber.info/inful/homer/internal/parser"
)

// CheckCmd implements the 'check' command: a parse-only pass that reports
// every recoverable line error without writing any output.
type CheckCmd struct{}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", cfg.Input)
		}
		return fmt.Errorf("open input %s: %w", cfg.Input, err)
	}
	defer func() { _ = f.Close() }()

	doc := model.NewDocument()
	p := parser.New(doc)
	if err := p.ProcessReader(f); err != nil {
		return err
	}

	for _, lineErr := range p.Errors() {
		fmt.Printf("%s: %s\n", cfg.Input, lineErr.Error())
	}
	fmt.Printf("%d groups, %d links, %d problem(s)\n",
		doc.TotalGroups(), doc.TotalLinks(), len(p.Errors()))

	if n := len(p.Errors()); n > 0 {
		return fmt.Errorf("%d line(s) would be skipped", n)
	}
	return nil
}
