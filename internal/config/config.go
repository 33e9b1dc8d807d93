// Package config loads and initializes the generator configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Root is the plugin monorepo directory to scan.
	Root string `yaml:"root"`
	// Output is the directory the generated markdown tree is written to.
	Output string `yaml:"output"`
	// NavManifest is the path of the emitted site navigation file.
	NavManifest string `yaml:"nav_manifest"`
	// Site holds settings copied into the navigation manifest.
	Site SiteConfig `yaml:"site"`
	// ScopePrefix is the fixed scope prefix shared by all package names;
	// its length drives title derivation.
	ScopePrefix string `yaml:"scope_prefix"`
	// SourceIndex is the per-package path of the annotated source file.
	SourceIndex string `yaml:"source_index"`
	// ExcludeDirs are directory names skipped during scanning.
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty"`
	// Clean controls whether the output tree is removed and recreated at
	// the start of a run. Defaults to true; re-running against a populated
	// tree without cleaning duplicates appended sections.
	Clean *bool `yaml:"clean,omitempty"`
	// Report enables writing a JSON build report into the output directory.
	Report bool `yaml:"report,omitempty"`
}

// SiteConfig represents site-wide settings for the navigation manifest.
type SiteConfig struct {
	Name  string `yaml:"name"`
	Theme string `yaml:"theme"`
}

// CleanOutput reports whether the output tree should be cleared before a run.
func (c *Config) CleanOutput() bool { return c.Clean == nil || *c.Clean }

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; its absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Root == "" {
		c.Root = "plugins"
	}
	if c.Output == "" {
		c.Output = "docs"
	}
	if c.NavManifest == "" {
		c.NavManifest = "mkdocs.yml"
	}
	if c.Site.Name == "" {
		c.Site.Name = "Sweet JsPsych"
	}
	if c.Site.Theme == "" {
		c.Site.Theme = "material"
	}
	if c.ScopePrefix == "" {
		c.ScopePrefix = "@sweet-jspsych/plugin-"
	}
	if c.SourceIndex == "" {
		c.SourceIndex = "src/index.js"
	}
	if len(c.ExcludeDirs) == 0 {
		c.ExcludeDirs = []string{"node_modules"}
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Root:        "plugins",
		Output:      "docs",
		NavManifest: "mkdocs.yml",
		Site: SiteConfig{
			Name:  "Sweet JsPsych",
			Theme: "material",
		},
		ScopePrefix: "@sweet-jspsych/plugin-",
		SourceIndex: "src/index.js",
		ExcludeDirs: []string{"node_modules"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := "# docgen configuration\n# Paths are resolved relative to the working directory.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
