// Package report records a summary of one generation run. The report is an
// optional output; the generated documentation itself stays deterministic.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Report summarizes one generation run.
type Report struct {
	RunID      string   `json:"run_id"`
	Packages   []string `json:"packages"`
	Skipped    []string `json:"skipped,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// New creates a report with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:    uuid.NewString(),
		Packages: make([]string, 0),
	}
}

// RecordPackage notes a successfully documented package.
func (r *Report) RecordPackage(name string) {
	r.Packages = append(r.Packages, name)
}

// RecordSkip notes a package that was skipped due to a per-package error.
func (r *Report) RecordSkip(path string) {
	r.Skipped = append(r.Skipped, path)
}

// Write persists the report as JSON.
func (r *Report) Write(path string, elapsed time.Duration) error {
	r.DurationMS = elapsed.Milliseconds()
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal build report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write build report: %w", err)
	}
	return nil
}
