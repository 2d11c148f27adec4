// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants used for status lines and summaries.
const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a non-fatal problem, such as a source that ended early.
	Warning = "!"

	// Info marks informational lines.
	Info = "i"
)
