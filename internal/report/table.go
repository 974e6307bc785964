package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"
)

// writeTables prints each section as an aligned table under its title, or
// the section's empty message when it has no rows.
func writeTables(w io.Writer, doc document) error {
	for i, sec := range doc.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if len(doc.Sections) > 1 || len(sec.Rows) > 0 {
			if _, err := fmt.Fprintf(w, "%s\n%s\n", sec.Title, strings.Repeat("=", len(sec.Title))); err != nil {
				return err
			}
		}
		if len(sec.Rows) == 0 {
			if _, err := fmt.Fprintln(w, sec.Empty); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(upper(sec.Header), "\t"))
		for _, row := range sec.Rows {
			fmt.Fprintln(tw, strings.Join(cleanCells(row), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(doc.Footer) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		for _, line := range doc.Footer {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func upper(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.ToUpper(h)
	}
	return out
}

// cleanCells replaces control characters so a cell stays in its column and row
func cleanCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return ' '
			}
			return r
		}, cell)
	}
	return out
}
