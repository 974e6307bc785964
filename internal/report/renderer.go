// Package report renders validation results, timesheets and calendars as
// text tables, JSON, CSV or XLSX workbooks.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/services"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", errors.NewInvalidInputError("format", s, "must be one of table, json, csv, xlsx")
	}
}

// ContentType returns the MIME type of documents in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Validation is everything rendered for one validation run. Daily is
// optional; when set, table, JSON and XLSX output include per-day totals.
type Validation struct {
	Start   domain.Date
	Days    int
	Report  domain.Report
	Summary domain.Summary
	Daily   []services.DayStatistics
}

// Renderer writes documents in one format.
type Renderer struct {
	format Format
}

// NewRenderer creates a renderer for format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// RenderValidation writes the missing and extra lists and the summary.
func (r *Renderer) RenderValidation(w io.Writer, v Validation) error {
	return r.render(w, validationDocument(v))
}

// RenderTimesheet writes the parsed entries in input order.
func (r *Renderer) RenderTimesheet(w io.Writer, ts *domain.Timesheet) error {
	return r.render(w, timesheetDocument(ts))
}

// RenderCalendar writes the calendar day by day.
func (r *Renderer) RenderCalendar(w io.Writer, cd *domain.CalendarDays) error {
	return r.render(w, calendarDocument(cd))
}

// section is one titled table of a document.
type section struct {
	Title  string
	Sheet  string
	Header []string
	Rows   [][]string
	Empty  string
}

// document is a format-neutral rendering.
type document struct {
	Sections  []section
	Footer    []string
	CSVHeader []string
	CSVRows   [][]string
	JSON      interface{}
}

func (r *Renderer) render(w io.Writer, doc document) error {
	switch r.format {
	case FormatTable, "":
		return writeTables(w, doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.JSON)
	case FormatCSV:
		return writeCSV(w, doc)
	case FormatXLSX:
		return writeWorkbook(w, doc)
	default:
		return errors.NewInvalidInputError("format", string(r.format), "unsupported format")
	}
}

func writeCSV(w io.Writer, doc document) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(doc.CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range doc.CSVRows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
