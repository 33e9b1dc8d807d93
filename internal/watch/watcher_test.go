package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/config"
)

func watchConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		Root:        filepath.Join(base, "plugins"),
		Output:      filepath.Join(base, "docs"),
		NavManifest: filepath.Join(base, "mkdocs.yml"),
		Site:        config.SiteConfig{Name: "Sweet JsPsych", Theme: "material"},
		ScopePrefix: "@sweet-jspsych/plugin-",
		SourceIndex: "src/index.js",
		ExcludeDirs: []string{"node_modules"},
	}
}

func addPackage(t *testing.T, root, dir string) {
	t.Helper()
	pkgDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"),
		[]byte(`{"name":"@sweet-jspsych/plugin-`+dir+`","version":"1.0.0"}`), 0o644))
}

func TestWatcher_InitialBuildAndRebuildOnChange(t *testing.T) {
	cfg := watchConfig(t)
	addPackage(t, cfg.Root, "first")

	w, err := New(cfg, 50*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	firstPage := filepath.Join(cfg.Output, "first", "index.md")
	require.Eventually(t, func() bool {
		_, err := os.Stat(firstPage)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "initial build did not produce %s", firstPage)

	addPackage(t, cfg.Root, "second")

	secondPage := filepath.Join(cfg.Output, "second", "index.md")
	require.Eventually(t, func() bool {
		_, err := os.Stat(secondPage)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "rebuild did not produce %s", secondPage)

	cancel()
	require.NoError(t, <-done)
}

func TestNew_DefaultsDebounce(t *testing.T) {
	cfg := watchConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Root, 0o755))

	w, err := New(cfg, 0)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, w.debounce)
	require.NoError(t, w.watcher.Close())
}
