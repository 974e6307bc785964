// Package timesheet decodes raw timesheet rows from CSV, XLSX and SQLite
// inputs and validates them into a domain.Timesheet.
package timesheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"timeguard/internal/errors"
)

// Row is one undecoded timesheet row. Line is the 1-based position of the
// row in its source, used in error messages.
type Row struct {
	Line    int
	Date    string
	Start   string
	End     string
	Project string
}

// Column names every tabular input must carry, matched case-insensitively.
const (
	ColumnDate    = "date"
	ColumnStart   = "start"
	ColumnEnd     = "end"
	ColumnProject = "project"
)

var requiredColumns = []string{ColumnDate, ColumnStart, ColumnEnd, ColumnProject}

// Format identifies a timesheet encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", errors.NewInvalidInputError("timesheet", path,
			fmt.Sprintf("unsupported file extension %q (expected .csv, .xlsx, .db, .sqlite or .sqlite3)", ext))
	}
}

// columnIndex maps the required columns to their positions in header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.NewParseError(1, fmt.Sprintf("missing required column %q", col), nil)
		}
	}
	return index, nil
}

// rowFromRecord builds a Row from a record laid out per index. Records
// shorter than the header read the missing cells as empty.
func rowFromRecord(line int, record []string, index map[string]int) Row {
	cell := func(col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	return Row{
		Line:    line,
		Date:    cell(ColumnDate),
		Start:   cell(ColumnStart),
		End:     cell(ColumnEnd),
		Project: cell(ColumnProject),
	}
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
