package main

import (
	"github.com/alecthomas/kong"

	"github.com/younesStrittmatter/sweet-jsPsych/cmd/docgen/commands"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("docgen"),
		kong.Description("Generate markdown documentation for sweet-jsPsych plugin packages"),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&commands.Global{})
	ctx.FatalIfErrorf(err)
}
