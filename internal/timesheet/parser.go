package timesheet

import (
	"io"
	"log/slog"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/logging"
	"timeguard/internal/validation"
)

// Parser validates decoded rows into a timesheet.
type Parser struct {
	validator *validation.TimesheetValidator
	logger    *slog.Logger
}

// NewParser creates a parser. A nil validator uses default limits.
func NewParser(validator *validation.TimesheetValidator, logger *slog.Logger) *Parser {
	if validator == nil {
		validator = validation.NewTimesheetValidator()
	}
	return &Parser{validator: validator, logger: logging.OrDiscard(logger)}
}

// Parse validates rows in order and groups the entries by date. It stops at
// the first invalid row and returns a parse error carrying its line number;
// the row's *validation.ValidationError is the cause.
func (p *Parser) Parse(rows []Row) (*domain.Timesheet, error) {
	entries := make([]domain.TimesheetEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := p.validator.ValidateRow(row.Line, row.Date, row.Start, row.End, row.Project)
		if err != nil {
			p.logger.Debug("rejected timesheet row", "line", row.Line, "error", err)
			return nil, errors.NewParseError(row.Line, "invalid timesheet row", err)
		}
		entries = append(entries, entry)
	}

	ts := domain.NewTimesheet(entries)
	p.logger.Debug("parsed timesheet", "entries", ts.Len(), "dates", len(ts.Dates()))
	return ts, nil
}

// Decode reads rows from r in the given format and parses them. SQLite
// input cannot be streamed; use ReadSQLite with an opened repository.
func (p *Parser) Decode(r io.Reader, format Format, sheet string) (*domain.Timesheet, error) {
	var rows []Row
	var err error
	switch format {
	case FormatCSV:
		rows, err = ReadCSV(r)
	case FormatXLSX:
		rows, err = ReadXLSX(r, sheet)
	default:
		return nil, errors.NewInvalidInputError("format", string(format), "must be csv or xlsx for streamed input")
	}
	if err != nil {
		return nil, err
	}
	return p.Parse(rows)
}
