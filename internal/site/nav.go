package site

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NavEntry names one generated package page in the navigation manifest.
// Entries are collected in discovery order.
type NavEntry struct {
	Name string
	Path string
}

// mkdocs configuration model. Typed structs keep the emitted key order
// stable, so repeated runs produce byte-identical manifests.
type mkdocsConfig struct {
	SiteName string              `yaml:"site_name"`
	Theme    mkdocsTheme         `yaml:"theme"`
	Nav      []map[string]string `yaml:"nav"`
}

type mkdocsTheme struct {
	Name     string          `yaml:"name"`
	Palette  []mkdocsPalette `yaml:"palette"`
	Features []string        `yaml:"features"`
}

type mkdocsPalette struct {
	Scheme  string       `yaml:"scheme"`
	Primary string       `yaml:"primary"`
	Toggle  mkdocsToggle `yaml:"toggle"`
}

type mkdocsToggle struct {
	Icon string `yaml:"icon"`
	Name string `yaml:"name"`
}

// renderNavManifest marshals the site navigation manifest: theme settings
// plus one nav entry per discovered package, with the home page first.
func renderNavManifest(siteName, theme string, entries []NavEntry) ([]byte, error) {
	cfg := mkdocsConfig{
		SiteName: siteName,
		Theme: mkdocsTheme{
			Name: theme,
			Palette: []mkdocsPalette{
				{
					Scheme:  "default",
					Primary: "black",
					Toggle:  mkdocsToggle{Icon: "material/brightness-7", Name: "Switch to dark mode"},
				},
				{
					Scheme:  "slate",
					Primary: "black",
					Toggle:  mkdocsToggle{Icon: "material/brightness-4", Name: "Switch to light mode"},
				},
			},
			Features: []string{
				"navigation.indexes",
				"content.code.copy",
				"announce.dismiss",
			},
		},
		Nav: make([]map[string]string, 0, len(entries)+1),
	}

	cfg.Nav = append(cfg.Nav, map[string]string{"Home": "index.md"})
	for _, e := range entries {
		cfg.Nav = append(cfg.Nav, map[string]string{e.Name: e.Path})
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal navigation manifest: %w", err)
	}
	return data, nil
}
