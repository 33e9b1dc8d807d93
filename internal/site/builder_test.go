package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/config"
)

const testScopePrefix = "@sweet-jspsych/plugin-"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	return &config.Config{
		Root:        filepath.Join(base, "plugins"),
		Output:      filepath.Join(base, "docs"),
		NavManifest: filepath.Join(base, "mkdocs.yml"),
		Site:        config.SiteConfig{Name: "Sweet JsPsych", Theme: "material"},
		ScopePrefix: testScopePrefix,
		SourceIndex: "src/index.js",
		ExcludeDirs: []string{"node_modules"},
	}
}

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// addPackage lays down a minimal plugin package under root.
func addPackage(t *testing.T, root, dir, shortName string) string {
	t.Helper()
	pkgDir := filepath.Join(root, dir)
	writeFixture(t, filepath.Join(pkgDir, "package.json"),
		`{"name":"`+testScopePrefix+shortName+`","version":"1.0.0","description":"Does things."}`)
	writeFixture(t, filepath.Join(pkgDir, "rollup.config.mjs"),
		"export default {\n  input: \"src/index.js\",\n  output: [{ name: \"jsPsychTestPlugin\", file: \"dist/index.js\" }],\n};\n")
	return pkgDir
}

const annotatedSource = `/**
 * @plugin test-plugin
 * @description A test plugin.
 * @author Test Author
 */
const info = {
  parameters: {
    /** The stimulus markup. */
    stimulus: {
      type: ParameterType.HTML_STRING,
      default: undefined,
    },
  },
  data: {
    /** Response time. */
    rt: {
      type: ParameterType.INT,
    },
  },
};
`

func TestRun_GeneratesPagesAndNavManifest(t *testing.T) {
	cfg := testConfig(t)
	pkgA := addPackage(t, cfg.Root, "plugin-alpha_one", "alpha_one")
	addPackage(t, cfg.Root, "plugin-beta", "beta")
	writeFixture(t, filepath.Join(pkgA, "src", "index.js"), annotatedSource)

	b := NewBuilder(cfg)
	require.NoError(t, b.Run(context.Background()))

	pageA, err := os.ReadFile(filepath.Join(cfg.Output, "plugin-alpha_one", "index.md"))
	require.NoError(t, err)
	require.Contains(t, string(pageA), "# Alpha One")
	require.Contains(t, string(pageA), "npm install "+testScopePrefix+"alpha_one")
	require.Contains(t, string(pageA), "# test-plugin by Test Author")
	require.Contains(t, string(pageA), "## Parameters")
	require.Contains(t, string(pageA), "| stimulus | HTML_STRING | undefined |")

	pageB, err := os.ReadFile(filepath.Join(cfg.Output, "plugin-beta", "index.md"))
	require.NoError(t, err)
	require.Contains(t, string(pageB), "# Beta")
	require.NotContains(t, string(pageB), "## Parameters")

	home, err := os.ReadFile(filepath.Join(cfg.Output, "index.md"))
	require.NoError(t, err)
	require.Contains(t, string(home), "# Sweet JsPsych")

	nav, err := os.ReadFile(cfg.NavManifest)
	require.NoError(t, err)
	require.Contains(t, string(nav), "site_name: Sweet JsPsych")
	require.Contains(t, string(nav), "Plugin Alpha One: plugin-alpha_one")
	require.Contains(t, string(nav), "Plugin Beta: plugin-beta")
}

func TestRun_NoManifestsAbortsEarly(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Root, 0o755))

	err := NewBuilder(cfg).Run(context.Background())
	require.ErrorIs(t, err, ErrNoPackagesFound)
}

func TestRun_MalformedManifestSkipsPackage(t *testing.T) {
	cfg := testConfig(t)
	addPackage(t, cfg.Root, "plugin-good", "good")
	writeFixture(t, filepath.Join(cfg.Root, "plugin-bad", "package.json"), "{broken")

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Output, "plugin-good", "index.md"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Output, "plugin-bad", "index.md"))
	require.True(t, os.IsNotExist(err))

	nav, err := os.ReadFile(cfg.NavManifest)
	require.NoError(t, err)
	require.NotContains(t, string(nav), "plugin-bad")
}

func TestRun_ShortPackageNameSkipsPackage(t *testing.T) {
	cfg := testConfig(t)
	addPackage(t, cfg.Root, "plugin-good", "good")
	writeFixture(t, filepath.Join(cfg.Root, "plugin-short", "package.json"), `{"name":"@short"}`)

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Output, "plugin-short", "index.md"))
	require.True(t, os.IsNotExist(err))
}

func TestRun_ExamplesAppendUnderSingleHeading(t *testing.T) {
	cfg := testConfig(t)
	pkgDir := addPackage(t, cfg.Root, "plugin-demo", "demo")
	writeFixture(t, filepath.Join(pkgDir, "examples", "basic.js"), "jsPsych.run(basic);\n")
	writeFixture(t, filepath.Join(pkgDir, "examples", "fancy.js"), "jsPsych.run(fancy);\n")

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	page, err := os.ReadFile(filepath.Join(cfg.Output, "plugin-demo", "index.md"))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(page), "## Examples"))

	appendix := string(page)[strings.Index(string(page), "## Examples"):]
	require.Equal(t, 2, strings.Count(appendix, "```js"))
	require.Contains(t, appendix, "jsPsych.run(basic);")
	require.Contains(t, appendix, "jsPsych.run(fancy);")
}

func TestRun_DocsSnippetsAppended(t *testing.T) {
	cfg := testConfig(t)
	pkgDir := addPackage(t, cfg.Root, "plugin-doc", "doc")
	writeFixture(t, filepath.Join(pkgDir, "docs", "notes.md"), "## Notes\n\nExtra notes.\n")

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	page, err := os.ReadFile(filepath.Join(cfg.Output, "plugin-doc", "index.md"))
	require.NoError(t, err)
	require.Contains(t, string(page), "Extra notes.")
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	cfg := testConfig(t)
	pkgDir := addPackage(t, cfg.Root, "plugin-det", "det")
	writeFixture(t, filepath.Join(pkgDir, "src", "index.js"), annotatedSource)
	writeFixture(t, filepath.Join(pkgDir, "examples", "run.js"), "jsPsych.run(run);\n")

	b := NewBuilder(cfg)
	require.NoError(t, b.Run(context.Background()))
	first := snapshotTree(t, cfg.Output, cfg.NavManifest)

	require.NoError(t, b.Run(context.Background()))
	second := snapshotTree(t, cfg.Output, cfg.NavManifest)

	require.Equal(t, first, second)
}

func TestRun_CleanRemovesStaleOutput(t *testing.T) {
	cfg := testConfig(t)
	addPackage(t, cfg.Root, "plugin-live", "live")
	writeFixture(t, filepath.Join(cfg.Output, "plugin-removed", "index.md"), "stale\n")

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Output, "plugin-removed"))
	require.True(t, os.IsNotExist(err))
}

func TestRun_NodeModulesIgnored(t *testing.T) {
	cfg := testConfig(t)
	addPackage(t, cfg.Root, "plugin-real", "real")
	writeFixture(t, filepath.Join(cfg.Root, "plugin-real", "node_modules", "dep", "package.json"), `{"name":"dep"}`)

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	nav, err := os.ReadFile(cfg.NavManifest)
	require.NoError(t, err)
	require.NotContains(t, string(nav), "node_modules")
}

func TestRun_ReportWrittenWhenEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report = true
	addPackage(t, cfg.Root, "plugin-rep", "rep")

	require.NoError(t, NewBuilder(cfg).Run(context.Background()))

	_, err := os.Stat(filepath.Join(cfg.Output, "build-report.json"))
	require.NoError(t, err)
}

// snapshotTree maps relative paths to file contents for the output tree
// plus the navigation manifest.
func snapshotTree(t *testing.T, outputDir, navManifest string) map[string]string {
	t.Helper()
	snap := make(map[string]string)
	require.NoError(t, filepath.Walk(outputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snap[rel] = string(raw)
		return nil
	}))
	raw, err := os.ReadFile(navManifest)
	require.NoError(t, err)
	snap["mkdocs.yml"] = string(raw)
	return snap
}
