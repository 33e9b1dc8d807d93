// Package site orchestrates scanning, extraction, and rendering into a
// per-package markdown tree plus a site navigation manifest.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/config"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/extract"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/logfields"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/pkgmeta"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/render"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/report"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/scanner"
)

// ErrNoPackagesFound indicates the root tree contains no package manifests
// at all; the run aborts early with a diagnostic.
var ErrNoPackagesFound = errors.New("no package manifests found")

// Section names of a package page, in assembly order.
const (
	sectionOverview = "overview"
	sectionPlugin   = "plugin"
	sectionDocs     = "docs"
	sectionExamples = "examples"
)

const manifestFileName = "package.json"
const bundlerConfigFileName = "rollup.config.mjs"

// Builder runs one generation pass over the plugin tree.
type Builder struct {
	cfg  *config.Config
	scan *scanner.Scanner
}

// NewBuilder creates a builder for the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, scan: scanner.New(cfg.ExcludeDirs)}
}

// Run executes one full generation pass: enumerate packages, render each
// page, then emit the home page and the navigation manifest. Per-package
// failures are logged and skipped; the run continues with the remaining
// packages.
func (b *Builder) Run(ctx context.Context) error {
	started := time.Now()

	manifests, err := b.scan.FindFiles(b.cfg.Root, scanner.NameIs(manifestFileName))
	if err != nil {
		return fmt.Errorf("scan package manifests: %w", err)
	}
	if len(manifests) == 0 {
		slog.Error("No package manifests found, nothing to document", logfields.Path(b.cfg.Root))
		return ErrNoPackagesFound
	}
	slog.Info("Discovered packages", logfields.Count(len(manifests)), logfields.Path(b.cfg.Root))

	if b.cfg.CleanOutput() {
		if err := b.resetOutputTree(); err != nil {
			return err
		}
	}

	rep := report.New()
	nav := make([]NavEntry, 0, len(manifests))
	for _, manifestPath := range manifests {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, err := b.buildPackage(manifestPath)
		if err != nil {
			slog.Error("Skipping package", logfields.File(manifestPath), logfields.Error(err))
			rep.RecordSkip(manifestPath)
			continue
		}
		nav = append(nav, *entry)
		rep.RecordPackage(entry.Name)
	}

	if err := b.writeHomePage(); err != nil {
		return err
	}
	if err := b.writeNavManifest(nav); err != nil {
		return err
	}

	if b.cfg.Report {
		reportPath := filepath.Join(b.cfg.Output, "build-report.json")
		if err := rep.Write(reportPath, time.Since(started)); err != nil {
			slog.Warn("Failed to write build report", logfields.Error(err))
		}
	}

	slog.Info("Documentation generated",
		logfields.Count(len(nav)),
		logfields.Output(b.cfg.Output),
		logfields.DurationMS(time.Since(started).Milliseconds()))
	return nil
}

// buildPackage assembles and writes the page for one package, returning its
// navigation entry.
func (b *Builder) buildPackage(manifestPath string) (*NavEntry, error) {
	pkgDir := filepath.Dir(manifestPath)
	relDir, err := filepath.Rel(b.cfg.Root, pkgDir)
	if err != nil {
		return nil, fmt.Errorf("relative package path: %w", err)
	}

	bundlerPath := filepath.Join(pkgDir, bundlerConfigFileName)
	if _, err := os.Stat(bundlerPath); err != nil {
		bundlerPath = ""
	}

	desc, err := pkgmeta.ReadDescriptor(manifestPath, bundlerPath)
	if err != nil {
		return nil, err
	}

	title, err := pkgmeta.DeriveTitle(desc.Name, len(b.cfg.ScopePrefix))
	if err != nil {
		return nil, err
	}
	slog.Debug("Building package page", logfields.Package(desc.Name), logfields.Title(title))

	doc := NewDocument()
	doc.Create(sectionOverview, render.Overview(desc, title))
	b.addPluginDoc(doc, pkgDir)
	b.appendSnippets(doc, pkgDir)

	outPath := filepath.Join(b.cfg.Output, relDir, "index.md")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(doc.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write package page: %w", err)
	}

	return &NavEntry{
		Name: pkgmeta.Titleize(filepath.ToSlash(relDir)),
		Path: filepath.ToSlash(relDir),
	}, nil
}

// addPluginDoc extracts metadata from the package's annotated source file,
// when present, and creates the plugin section. Missing anchors are logged
// and leave the page with the manifest-derived overview only.
func (b *Builder) addPluginDoc(doc *Document, pkgDir string) {
	srcPath := filepath.Join(pkgDir, filepath.FromSlash(b.cfg.SourceIndex))
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return
	}

	meta, err := extract.Plugin(string(raw))
	if err != nil {
		slog.Warn("Plugin metadata extraction failed", logfields.File(srcPath), logfields.Error(err))
		return
	}
	doc.Create(sectionPlugin, render.PluginDoc(meta))
}

// appendSnippets appends supplementary docs and example snippets found in
// the package's docs/ and examples/ directories.
func (b *Builder) appendSnippets(doc *Document, pkgDir string) {
	for _, dir := range b.findSnippetDirs(pkgDir, "docs") {
		for _, body := range b.readSnippets(dir) {
			doc.Append(sectionDocs, strings.TrimRight(body, "\n")+"\n")
		}
	}

	for _, dir := range b.findSnippetDirs(pkgDir, "examples") {
		snippets := b.readSnippets(dir)
		if appendix := render.ExamplesAppendix(doc.String(), snippets); appendix != "" {
			doc.Append(sectionExamples, appendix)
		}
	}
}

func (b *Builder) findSnippetDirs(pkgDir, suffix string) []string {
	dirs, err := b.scan.FindDirsEndingWith(pkgDir, suffix)
	if err != nil {
		slog.Warn("Snippet directory scan failed", logfields.Path(pkgDir), logfields.Error(err))
		return nil
	}
	return dirs
}

func (b *Builder) readSnippets(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("Failed to read snippet directory", logfields.Path(dir), logfields.Error(err))
		return nil
	}
	snippets := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			slog.Warn("Failed to read snippet", logfields.File(e.Name()), logfields.Error(err))
			continue
		}
		snippets = append(snippets, string(raw))
	}
	return snippets
}

func (b *Builder) resetOutputTree() error {
	if err := os.RemoveAll(b.cfg.Output); err != nil {
		return fmt.Errorf("clear output directory: %w", err)
	}
	if err := os.MkdirAll(b.cfg.Output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

func (b *Builder) writeHomePage() error {
	content := fmt.Sprintf("# %s\n\nGenerated documentation for every plugin package in this repository.\n", b.cfg.Site.Name)
	path := filepath.Join(b.cfg.Output, "index.md")
	if err := os.MkdirAll(b.cfg.Output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write home page: %w", err)
	}
	return nil
}

func (b *Builder) writeNavManifest(entries []NavEntry) error {
	data, err := renderNavManifest(b.cfg.Site.Name, b.cfg.Site.Theme, entries)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(b.cfg.NavManifest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create navigation manifest directory: %w", err)
		}
	}
	if err := os.WriteFile(b.cfg.NavManifest, data, 0o644); err != nil {
		return fmt.Errorf("write navigation manifest: %w", err)
	}
	return nil
}
