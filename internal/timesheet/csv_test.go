package timesheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeguard/internal/errors"
)

func TestReadCSV(t *testing.T) {
	input := "date,start,end,project\n" +
		"2024-01-02,09:00,10:00,Alpha\n" +
		"\n" +
		"2024-01-02, 14:00 ,15:00,\"Beta, phase 2\"\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{Line: 2, Date: "2024-01-02", Start: "09:00", End: "10:00", Project: "Alpha"}, rows[0])
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "14:00", rows[1].Start)
	assert.Equal(t, "Beta, phase 2", rows[1].Project)
}

func TestReadCSV_HeaderRules(t *testing.T) {
	input := "\ufeffProject, End ,notes,START,Date\n" +
		"Alpha,10:00,ignored,09:00,2024-01-02\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Line: 2, Date: "2024-01-02", Start: "09:00", End: "10:00", Project: "Alpha"}, rows[0])
}

func TestReadCSV_EmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no bytes", ""},
		{"header only", "date,start,end,project\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,start,project\n2024-01-02,09:00,A\n"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeParse))
	assert.Contains(t, err.Error(), `missing required column "end"`)
}

func TestReadCSV_ShortRecord(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("date,start,end,project\n2024-01-02,09:00\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].End)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,start,end,project\n2024-01-02,\"09:00,10:00,A\n"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeParse))
}
