package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/homer/cmd/homer/commands"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("homer"),
		kong.Description("Generate a personal start page from a plain-text links file."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}))
}
