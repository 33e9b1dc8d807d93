// Package render turns package descriptors and extracted plugin metadata
// into markdown fragments. All functions are pure; callers own the I/O.
package render

import (
	"fmt"
	"strings"

	"github.com/younesStrittmatter/sweet-jsPsych/internal/extract"
	"github.com/younesStrittmatter/sweet-jsPsych/internal/pkgmeta"
)

// CompatibilityLine is appended to every overview.
const CompatibilityLine = "jsPsych 7.0.0"

// Overview renders the manifest-derived page head: title, description,
// loading instructions (script tag and package manager) and compatibility.
func Overview(d *pkgmeta.Descriptor, title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "%s\n\n", d.Description)
	b.WriteString("## Loading\n\n")
	b.WriteString("### In browser\n\n")
	fmt.Fprintf(&b, "```js\n<script src=\"https://unpkg.com/%s@%s\"></script>\n```\n\n", d.Name, d.Version)
	b.WriteString("### Via NPM\n\n")
	fmt.Fprintf(&b, "```\nnpm install %s\n```\n\n", d.Name)
	fmt.Fprintf(&b, "```js\nimport %s from '%s';\n```\n\n", d.ExportName, d.Name)
	fmt.Fprintf(&b, "## Compatibility\n\n%s\n", CompatibilityLine)
	return b.String()
}

// ParameterTable renders a markdown table of plugin parameters. The header
// and separator rows are always present, even with zero records.
func ParameterTable(params []extract.Parameter) string {
	var b strings.Builder
	b.WriteString("| Parameter | Type | Default Value | Description |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, p := range params {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Name, p.Type, p.Default, p.Description)
	}
	return b.String()
}

// DataTable renders a markdown table of generated data fields.
func DataTable(fields []extract.DataField) string {
	var b strings.Builder
	b.WriteString("| Name | Type | Description |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", f.Name, f.Type, f.Description)
	}
	return b.String()
}

// PluginDoc renders the code-derived page for one plugin: title line with
// plugin name and author, description, then the parameter and data tables.
func PluginDoc(m *extract.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s by %s\n\n", m.PluginName, m.Author)
	fmt.Fprintf(&b, "%s\n\n", m.Description)
	b.WriteString("## Parameters\n\n")
	b.WriteString(ParameterTable(m.Parameters))
	b.WriteString("\n## Data Generated\n\n")
	b.WriteString(DataTable(m.DataFields))
	return b.String()
}

// ExamplesAppendix renders example snippets as fenced code blocks. The
// "## Examples" heading is emitted once per document: when existing already
// contains one the snippets are appended without repeating it, so repeated
// calls accumulate blocks under a single heading.
func ExamplesAppendix(existing string, snippets []string) string {
	if len(snippets) == 0 {
		return ""
	}
	var b strings.Builder
	have := HasExamplesHeading(existing)
	for _, snippet := range snippets {
		if !have {
			b.WriteString("## Examples\n\n")
			have = true
		}
		fmt.Fprintf(&b, "```js\n%s\n```\n\n", strings.TrimRight(snippet, "\n"))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
