package sheet

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/records"
)

// Table is a named block of rows written as one worksheet.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Write saves a dataset to path in the format given by its extension.
func Write(path string, ds *records.Dataset) error {
	return WriteTables(path, Table{
		Name:   constants.DefaultSheetName,
		Header: ds.Header,
		Rows:   ds.Rows(),
	})
}

// WriteTable saves a single table to path.
func WriteTable(path, sheetName string, header []string, rows [][]string) error {
	return WriteTables(path, Table{Name: sheetName, Header: header, Rows: rows})
}

// WriteTables saves tables to path. An xlsx workbook gets one worksheet per
// table; a CSV file holds exactly one table.
func WriteTables(path string, tables ...Table) error {
	if len(tables) == 0 {
		return &errors.ValidationError{Field: "tables", Message: "at least one table is required"}
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	switch format {
	case FormatXLSX:
		return writeXLSX(path, tables)
	default:
		if len(tables) > 1 {
			return &errors.ValidationError{
				Field:   "tables",
				Value:   len(tables),
				Message: "csv files hold a single table",
			}
		}
		return writeCSV(path, tables[0])
	}
}

func writeCSV(path string, table Table) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

func writeXLSX(path string, tables []Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: constants.TextNumberFormat})
	if err != nil {
		return errors.WrapResource("create", "style", "text", err)
	}

	for i, table := range tables {
		name := table.Name
		if name == "" {
			name = constants.DefaultSheetName
		}
		if i == 0 {
			if err := f.SetSheetName(constants.DefaultSheetName, name); err != nil {
				return errors.WrapResource("rename", "sheet", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.WrapResource("create", "sheet", name, err)
		}
		if err := writeSheet(f, name, table, textStyle); err != nil {
			return errors.WrapResource("write", "sheet", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// writeSheet writes the header and rows as strings. Identifier columns get
// the text style so spreadsheet applications never reformat them.
func writeSheet(f *excelize.File, sheetName string, table Table, textStyle int) error {
	for col, name := range table.Header {
		if !records.IsIdentifierColumn(name) {
			continue
		}
		letter, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColStyle(sheetName, letter, textStyle); err != nil {
			return err
		}
	}

	write := func(rowNum int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(1, table.Header); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := write(i+2, row); err != nil {
			return err
		}
	}
	return nil
}
