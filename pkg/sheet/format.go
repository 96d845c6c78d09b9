package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentstation/roster/pkg/errors"
)

// Format is a tabular file format.
type Format string

const (
	// FormatCSV is comma-separated text.
	FormatCSV Format = "csv"
	// FormatXLSX is an Office Open XML workbook.
	FormatXLSX Format = "xlsx"
)

// String returns the string representation of a format.
func (f Format) String() string {
	return string(f)
}

// FormatFromPath detects the format of a file from its extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return "", &errors.ParseError{
			Format:  "xls",
			File:    path,
			Message: "legacy .xls workbooks are not supported, save the file as .xlsx",
			Err:     errors.ErrUnsupportedFormat,
		}
	}
	return "", &errors.ParseError{
		Format:  strings.TrimPrefix(ext, "."),
		File:    path,
		Message: fmt.Sprintf("unsupported file extension %q, expected .csv or .xlsx", ext),
		Err:     errors.ErrUnsupportedFormat,
	}
}
