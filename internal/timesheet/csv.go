package timesheet

import (
	"encoding/csv"
	stderrors "errors"
	"io"

	"timeguard/internal/errors"
)

// ReadCSV decodes a CSV timesheet. The first record is the header; column
// order is free and extra columns are ignored. Empty input yields no rows.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, csvError(err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rowFromRecord(line, record, index))
	}

	return rows, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.NewParseError(pe.Line, "malformed CSV", pe.Err)
	}
	return errors.NewParseError(0, "cannot read CSV", err)
}
