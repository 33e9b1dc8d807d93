// Package extract pulls plugin metadata out of annotated source files.
//
// The input is hand-written JavaScript with a documentation header
// (@plugin, @description, @author markers) and declarative parameters/data
// blocks whose fields carry doc comments. Extraction is lenient pattern
// matching, not a grammar: entries that do not match the expected
// comment+declaration shape are skipped, and the block bodies are captured
// with a greedy match to the last closing brace in the remainder of the
// file. The greedy capture can over-reach when unrelated blocks follow;
// that is a known limitation of the input format, kept on purpose.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors for required anchor markers. Callers are expected to log
// and skip the offending source file rather than abort the whole run.
var (
	ErrMissingPluginMarker    = errors.New("missing @plugin marker")
	ErrMissingDescription     = errors.New("missing @description marker")
	ErrMissingAuthor          = errors.New("missing @author marker")
	ErrMissingParametersBlock = errors.New("missing parameters block")
	ErrMissingDataBlock       = errors.New("missing data block")
)

// Parameter is one declared plugin parameter, in declaration order.
// Default holds the raw literal text from the source, uncoerced.
type Parameter struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// DataField is one declared output data field.
type DataField struct {
	Name        string
	Type        string
	Description string
}

// Metadata is everything extracted from one source file. There are no
// cross-file relationships.
type Metadata struct {
	PluginName  string
	Author      string
	Description string
	Parameters  []Parameter
	DataFields  []DataField
}

var (
	pluginRe      = regexp.MustCompile(`(?m)^[\s*/]*@plugin[ \t]+(.+)$`)
	descriptionRe = regexp.MustCompile(`(?m)^[\s*/]*@description[ \t]+(.+)$`)
	// Author text may span lines; it ends at the next marker, the close of
	// the doc comment, or end of input.
	authorRe = regexp.MustCompile(`(?s)@author[ \t]+(.*?)(?:\n\s*\*?\s*@|\*/|\z)`)

	// Block bodies are captured greedily to the textually last closing brace.
	parametersBlockRe = regexp.MustCompile(`(?s)parameters\s*:\s*\{(.*)\}`)
	dataBlockRe       = regexp.MustCompile(`(?s)data\s*:\s*\{(.*)\}`)

	// A field declaration: doc comment, identifier, type tag, and (for
	// parameters) a default literal taken verbatim. Accepted literals are
	// array, null, undefined, booleans, quoted strings, and integers.
	defaultLiteral = `\[[^\]]*\]|null|undefined|true|false|"[^"]*"|'[^']*'|-?\d+`
	parameterRe    = regexp.MustCompile(`(?s)/\*\*(.*?)\*/\s*(\w+)\s*:\s*\{\s*type\s*:\s*([\w.]+)\s*,\s*default\s*:\s*(` + defaultLiteral + `)`)
	dataFieldRe    = regexp.MustCompile(`(?s)/\*\*(.*?)\*/\s*(\w+)\s*:\s*\{\s*type\s*:\s*([\w.]+)`)
)

// Plugin extracts plugin metadata from one source file's text.
// The top-level anchors are required; per-entry mismatches inside the
// parameters and data blocks are silently skipped (best-effort parsing of
// hand-written comments).
func Plugin(source string) (*Metadata, error) {
	m := &Metadata{
		Parameters: make([]Parameter, 0),
		DataFields: make([]DataField, 0),
	}

	plugin := pluginRe.FindStringSubmatch(source)
	if plugin == nil {
		return nil, fmt.Errorf("%w: no anchor for plugin name", ErrMissingPluginMarker)
	}
	m.PluginName = strings.TrimSpace(plugin[1])

	description := descriptionRe.FindStringSubmatch(source)
	if description == nil {
		return nil, ErrMissingDescription
	}
	m.Description = strings.TrimSpace(description[1])

	author := authorRe.FindStringSubmatch(source)
	if author == nil {
		return nil, ErrMissingAuthor
	}
	m.Author = cleanCommentText(author[1])

	parametersBody := parametersBlockRe.FindStringSubmatch(source)
	if parametersBody == nil {
		return nil, ErrMissingParametersBlock
	}
	for _, e := range parameterRe.FindAllStringSubmatch(parametersBody[1], -1) {
		m.Parameters = append(m.Parameters, Parameter{
			Name:        e[2],
			Type:        stripNamespace(e[3]),
			Default:     e[4],
			Description: cleanCommentText(e[1]),
		})
	}

	dataBody := dataBlockRe.FindStringSubmatch(source)
	if dataBody == nil {
		return nil, ErrMissingDataBlock
	}
	for _, e := range dataFieldRe.FindAllStringSubmatch(dataBody[1], -1) {
		m.DataFields = append(m.DataFields, DataField{
			Name:        e[2],
			Type:        stripNamespace(e[3]),
			Description: cleanCommentText(e[1]),
		})
	}

	return m, nil
}

// stripNamespace drops a namespace qualifier from a type tag
// (ParameterType.HTML_STRING -> HTML_STRING).
func stripNamespace(tag string) string {
	if i := strings.LastIndex(tag, "."); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// cleanCommentText strips doc-comment decoration (leading asterisks and
// indentation) and collapses the text onto a single line.
func cleanCommentText(raw string) string {
	lines := strings.Split(raw, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			words = append(words, line)
		}
	}
	return strings.Join(words, " ")
}
