package validation

import (
	"fmt"
	"strings"
)

// Issue is one field-level validation failure.
type Issue struct {
	Path    string // Slash-separated instance path, "(root)" for the document itself
	Message string // Human-readable message
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// FileReport is the validation outcome of one record file.
type FileReport struct {
	File   string  // Base name, used for ordering and display
	Path   string  // Full path
	Err    error   // Read or parse failure; no further checks ran
	Issues []Issue // Schema and uniqueness failures
}

// Passed reports whether the file had no failures of any kind.
func (r FileReport) Passed() bool {
	return r.Err == nil && len(r.Issues) == 0
}

// Report is the outcome of validating a record directory.
type Report struct {
	Files  []FileReport
	Failed int // Number of failing files, not issues
}

// OK reports whether every file passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Add appends a file report and updates the failure count.
func (r *Report) Add(fr FileReport) {
	r.Files = append(r.Files, fr)
	if !fr.Passed() {
		r.Failed++
	}
}

// Error returns the summary error for a failing report, or nil.
func (r *Report) Error() error {
	if r.OK() {
		return nil
	}
	return &FailedError{Count: r.Failed}
}

// FailedError is returned when at least one file failed validation.
type FailedError struct {
	Count int
}

// Error implements the error interface.
func (e *FailedError) Error() string {
	return fmt.Sprintf("%d file(s) failed validation", e.Count)
}

// Lines renders the report the way the validate command prints it.
func (r FileReport) Lines() []string {
	switch {
	case r.Err != nil:
		return []string{fmt.Sprintf("[FAIL] %s: parse error: %v", r.File, r.Err)}
	case len(r.Issues) == 0:
		return []string{fmt.Sprintf("[OK]   %s", r.File)}
	}
	lines := make([]string, 0, len(r.Issues)+1)
	lines = append(lines, fmt.Sprintf("[FAIL] %s:", r.File))
	for _, issue := range r.Issues {
		lines = append(lines, "  - "+issue.Error())
	}
	return lines
}

// String renders the report lines joined by newlines.
func (r FileReport) String() string {
	return strings.Join(r.Lines(), "\n")
}
