// Package sheet reads and writes rosters as CSV files or xlsx workbooks.
//
// Every cell is handled as text. Workbooks are read with raw cell values so a
// long card number stored as a number is never rendered in exponent form,
// and identifier columns are written with the text number format.
package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/records"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a roster file, applies the column mapping and validates the
// required columns.
func Load(path string, opts ...Option) (*records.Dataset, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}

	rows, err := readRows(path, o.sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &errors.ParseError{
			Format:  "roster",
			File:    path,
			Message: "file has no header row",
		}
	}

	header, err := Resolve(path, rows[0], o.required, o.mapping)
	if err != nil {
		return nil, err
	}

	return records.New(header, trimTrailingBlank(rows[1:])), nil
}

// ReadHeader returns the header row of a file as stored, without mapping or
// validation.
func ReadHeader(path string, opts ...Option) ([]string, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	rows, err := readRows(path, o.sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	return cleanHeader(rows[0]), nil
}

// Resolve applies mapping to a raw header and checks that every required
// column is present. It returns the renamed header, or a
// *errors.MissingColumnsError listing the missing columns and the columns
// that are available for mapping.
//
// A mapping is rejected with a *errors.ValidationError when two required
// columns name the same file column, or when the renamed column would
// duplicate a required column the file already has.
func Resolve(path string, raw, required []string, mapping map[string]string) ([]string, error) {
	original := cleanHeader(raw)
	header := slices.Clone(original)

	wants := make([]string, 0, len(mapping))
	for want := range mapping {
		wants = append(wants, want)
	}
	slices.Sort(wants)

	sources := make(map[string]string, len(mapping))
	for _, want := range wants {
		have := strings.TrimSpace(mapping[want])
		want = strings.TrimSpace(want)
		if want == have {
			continue
		}
		if prev, dup := sources[have]; dup {
			return nil, &errors.ValidationError{
				Field:   "mapping",
				Value:   have,
				Message: fmt.Sprintf("file column is mapped to both %q and %q", prev, want),
			}
		}
		sources[have] = want

		i := slices.Index(original, have)
		if i < 0 {
			continue
		}
		if slices.Contains(original, want) {
			return nil, &errors.ValidationError{
				Field:   "mapping",
				Value:   want + "=" + have,
				Message: fmt.Sprintf("file already has a %q column", want),
			}
		}
		header[i] = want
	}

	var missing []string
	for _, col := range required {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingColumnsError(path, missing, original)
	}
	return header, nil
}

func cleanHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, name := range raw {
		header[i] = strings.TrimSpace(name)
	}
	return header
}

// trimTrailingBlank drops blank rows at the end of the data.
func trimTrailingBlank(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && isBlank(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func readRows(path, sheetName string) ([][]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return readXLSX(path, sheetName)
	default:
		return readCSV(path)
	}
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &errors.NotFoundError{Resource: "file", ID: path}
		}
		return nil, errors.WrapIO("read", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSX(path, sheetName string) ([][]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &errors.NotFoundError{Resource: "file", ID: path}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx", path, "workbook has no sheets", nil)
	}
	if sheetName == "" {
		sheetName = sheets[0]
	} else if !slices.Contains(sheets, sheetName) {
		return nil, &errors.NotFoundError{Resource: "sheet", ID: sheetName}
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	return rows, nil
}
