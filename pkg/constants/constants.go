// Package constants provides shared constants used throughout the roster codebase.
// This includes column names, row numbering, file permissions, and other values
// that should be consistent across the application.
package constants

import "time"

// Column constants name the required roster columns as exported by the
// point-of-sale system.
const (
	// ColumnFirstName is the first name column header
	ColumnFirstName = "First Name"

	// ColumnLastName is the last name column header
	ColumnLastName = "Last Name"

	// ColumnEmail is the email column header, required only for email passes
	ColumnEmail = "Email"

	// ColumnMemberID is the membership card identifier column header
	ColumnMemberID = "Member Card ID"
)

// Row numbering constants
const (
	// RowOffset converts a 0-based record position into the row number a user
	// sees in a spreadsheet: one for the header row and one for 1-based rows.
	RowOffset = 2
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default values
const (
	// DefaultOutputFile is the file name used when no output path is given
	DefaultOutputFile = "processed_roster.xlsx"

	// DefaultSheetName is the worksheet written to new xlsx files
	DefaultSheetName = "Sheet1"

	// ChangesSheetName is the worksheet holding the ID change log
	ChangesSheetName = "Changes"

	// RemovedSheetName is the worksheet holding the removed-records audit
	RemovedSheetName = "Removed"

	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".roster"

	// EnvPrefix is the environment variable prefix bound by viper
	EnvPrefix = "ROSTER"
)

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)

// TextNumberFormat is the built-in spreadsheet number format id for "@" (text).
// Identifier columns use it so long card numbers never lose precision.
const TextNumberFormat = 49
