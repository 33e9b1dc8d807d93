package site

import "strings"

// Document is an in-memory, ordered collection of named markdown sections.
// It replaces append-mode file handles: a package page is assembled fully
// in memory and written to disk exactly once per run, so repeated appends
// can never duplicate content across runs.
type Document struct {
	order    []string
	sections map[string]string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{sections: make(map[string]string)}
}

// Create sets the section body, truncating any previous content. Section
// order is fixed by first creation.
func (d *Document) Create(name, body string) {
	if _, ok := d.sections[name]; !ok {
		d.order = append(d.order, name)
	}
	d.sections[name] = body
}

// Append adds to the section, creating it when absent. Appended bodies are
// separated by a single newline.
func (d *Document) Append(name, body string) {
	existing, ok := d.sections[name]
	if !ok {
		d.Create(name, body)
		return
	}
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	d.sections[name] = existing + body
}

// String joins non-empty sections in creation order, separated by a blank
// line, ending with a single trailing newline.
func (d *Document) String() string {
	var b strings.Builder
	for _, name := range d.order {
		body := strings.TrimRight(d.sections[name], "\n")
		if body == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}
