package timesheet

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"timeguard/internal/domain"
	"timeguard/internal/errors"
)

// ReadXLSX decodes the named sheet of a workbook, or the first sheet when
// sheet is empty. Header rules match ReadCSV. Date and time cells stored as
// spreadsheet serial numbers are converted to YYYY-MM-DD and HH:MM.
func ReadXLSX(r io.Reader, sheet string) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParseError(0, "cannot open workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NewParseError(0, fmt.Sprintf("sheet %q not found", sheet), err)
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.NewParseError(0, fmt.Sprintf("cannot read sheet %q", sheet), err)
	}

	// leading blank rows before the header
	start := 0
	for start < len(records) && isBlank(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, nil
	}

	index, err := columnIndex(records[start])
	if err != nil {
		return nil, err
	}

	date1904 := uses1904(f)
	var rows []Row
	for i := start + 1; i < len(records); i++ {
		if isBlank(records[i]) {
			continue
		}
		row := rowFromRecord(i+1, records[i], index)
		row.Date = serialDate(row.Date, date1904)
		row.Start = serialClock(row.Start)
		row.End = serialClock(row.End)
		rows = append(rows, row)
	}

	return rows, nil
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

// maxSerialDate is the serial number after 9999-12-31.
const maxSerialDate = 2958466

// serialDate converts a whole serial day number to YYYY-MM-DD and leaves
// any other value untouched for the validator to judge.
func serialDate(v string, date1904 bool) string {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 || n >= maxSerialDate || n != math.Trunc(n) {
		return v
	}
	t, err := excelize.ExcelDateToTime(n, date1904)
	if err != nil {
		return v
	}
	return domain.DateOf(t).String()
}

// serialClock converts a fraction of a day in [0, 1) to HH:MM.
func serialClock(v string) string {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 || n >= 1 {
		return v
	}
	minutes := int(math.Round(n * 24 * 60))
	if minutes >= 24*60 {
		return v
	}
	return domain.NewClock(minutes/60, minutes%60).String()
}
