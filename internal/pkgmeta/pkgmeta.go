// Package pkgmeta reads a plugin package's manifest (package.json) and
// bundler configuration (rollup.config.mjs) into a Descriptor.
//
// The bundler config is deliberately not parsed as JavaScript: the export
// name, entry point and output files are pulled out with pattern matching,
// mirroring the loosely structured inputs this tool consumes.
package pkgmeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrMalformedManifest indicates the package manifest is not valid JSON.
	ErrMalformedManifest = errors.New("malformed package manifest")

	// ErrNameTooShort indicates the package name is shorter than the scope
	// prefix assumed by title derivation.
	ErrNameTooShort = errors.New("package name shorter than scope prefix")
)

// Defaults used when a manifest or bundler config omits a field.
const (
	DefaultName        = "Unnamed Package"
	DefaultVersion     = "0.0.0"
	DefaultDescription = "No description provided."
	NotSpecified       = "Not specified"
)

// Descriptor holds everything the renderer needs about one package.
// Immutable once read; lives only for the duration of one rendering pass.
type Descriptor struct {
	Name        string
	Version     string
	Description string
	ExportName  string
	EntryPoint  string
	Outputs     []string
}

var (
	inputRe = regexp.MustCompile(`input\s*:\s*['"](.*?)['"]`)
	nameRe  = regexp.MustCompile(`name\s*:\s*['"](.*?)['"]`)
	fileRe  = regexp.MustCompile(`file\s*:\s*['"](.*?)['"]`)
)

type manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ReadDescriptor loads a package manifest and, when bundlerConfigPath is
// non-empty, enriches the descriptor from the bundler config text.
// Missing manifest fields are not errors; malformed JSON is.
func ReadDescriptor(manifestPath, bundlerConfigPath string) (*Descriptor, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedManifest, manifestPath, err)
	}

	d := &Descriptor{
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Description,
		ExportName:  NotSpecified,
		EntryPoint:  NotSpecified,
		Outputs:     make([]string, 0),
	}
	if d.Name == "" {
		d.Name = DefaultName
	}
	if d.Version == "" {
		d.Version = DefaultVersion
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}

	if bundlerConfigPath != "" {
		text, err := os.ReadFile(bundlerConfigPath)
		if err != nil {
			return nil, fmt.Errorf("read bundler config: %w", err)
		}
		applyBundlerConfig(d, string(text))
	}

	return d, nil
}

func applyBundlerConfig(d *Descriptor, text string) {
	if m := inputRe.FindStringSubmatch(text); m != nil {
		d.EntryPoint = m[1]
	}
	if m := nameRe.FindStringSubmatch(text); m != nil {
		d.ExportName = m[1]
	}
	for _, m := range fileRe.FindAllStringSubmatch(text, -1) {
		d.Outputs = append(d.Outputs, m[1])
	}
}

// DeriveTitle computes a display title by stripping a fixed-length scope
// prefix from the package name. Names shorter than the prefix signal
// ErrNameTooShort instead of slicing out of range.
func DeriveTitle(name string, prefixLen int) (string, error) {
	if prefixLen < 0 || len(name) < prefixLen {
		return "", fmt.Errorf("%w: %q (prefix length %d)", ErrNameTooShort, name, prefixLen)
	}
	return Titleize(name[prefixLen:]), nil
}

// Titleize replaces underscores and hyphens with spaces and capitalizes
// each word. Used for page titles and navigation entry names.
func Titleize(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Title(language.English).String(s)
}
