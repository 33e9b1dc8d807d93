package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/watch"
)

// WatchCmd implements the 'watch' command: rebuild on plugin tree changes.
type WatchCmd struct {
	Root     string        `short:"r" help:"Plugin tree root directory (overrides config)"`
	Output   string        `short:"o" help:"Output directory for generated docs (overrides config)"`
	Debounce time.Duration `help:"Quiet period before a rebuild after a change" default:"2s"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, w.Root, w.Output)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(cfg, w.Debounce)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
