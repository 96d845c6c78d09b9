// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success represents successful completion of an operation.
	// Used for: written files, present columns, finished runs.
	Success = "✓"

	// Error represents failures or missing required input.
	// Used for: missing columns, failed runs.
	Error = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: dry runs, records left without an ID.
	Warning = "!"

	// Info represents informational messages.
	// Used for: hints and next steps.
	Info = "i"
)
