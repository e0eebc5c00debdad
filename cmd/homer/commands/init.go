package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/homer/internal/config"
	"git.home.luguber.info/inful/homer/internal/theme"
)

const sampleLinks = `# One group header per line, then its links as name, url[, description].
Dev Tools
GitHub, github.com, Code hosting
Go Packages, pkg.go.dev

Personal
Mail, mail.example.com
`

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration and template files"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Printf("Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	for _, name := range theme.Builtin() {
		fmt.Printf("Installing theme %q into %s\n", name, cfg.Templates.Directory)
		if err := theme.Install(cfg.Templates.Directory, name, i.Force); err != nil {
			return err
		}
	}

	if _, err := os.Stat(cfg.Input); os.IsNotExist(err) {
		fmt.Printf("Writing sample links file to %s\n", cfg.Input)
		if err := os.WriteFile(cfg.Input, []byte(sampleLinks), 0o644); err != nil {
			return fmt.Errorf("write sample links file: %w", err)
		}
	}

	fmt.Println("Initialized successfully. Run 'homer build' to generate the page.")
	return nil
}
