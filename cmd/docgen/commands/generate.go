package commands

import (
	"context"
	"fmt"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/site"
)

// GenerateCmd implements the 'generate' command: one full generation pass.
type GenerateCmd struct {
	Root   string `short:"r" help:"Plugin tree root directory (overrides config)"`
	Output string `short:"o" help:"Output directory for generated docs (overrides config)"`
	Report bool   `help:"Write a JSON build report into the output directory"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, g.Root, g.Output)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if g.Report {
		cfg.Report = true
	}
	return site.NewBuilder(cfg).Run(context.Background())
}
