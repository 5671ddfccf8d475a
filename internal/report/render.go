package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// headerRow returns the column headers for a report's aggregated rows.
func headerRow(rep *Report) []string {
	if len(rep.Details) > 0 {
		return []string{"Date", "Business", "Check in", "Check out", "Hours", "Note"}
	}
	header := []string{"Period", "Business", "Hours"}
	if rep.Comparison != nil {
		header = append(header, "Previous", "Difference", "Change %")
	}
	return header
}

// dataRows flattens a report into string cells matching headerRow.
func dataRows(rep *Report) [][]string {
	if len(rep.Details) > 0 {
		rows := make([][]string, 0, len(rep.Details))
		for _, d := range rep.Details {
			rows = append(rows, []string{
				d.Date, d.BusinessName, d.CheckIn, d.CheckOut,
				formatHours(d.Hours), d.Note,
			})
		}
		return rows
	}

	rows := make([][]string, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		cells := []string{r.Label, r.BusinessName, formatHours(r.Hours)}
		if rep.Comparison != nil {
			if r.ComparisonHours != nil {
				cells = append(cells,
					formatHours(*r.ComparisonHours),
					formatHours(*r.Difference),
					fmt.Sprintf("%+.1f%%", *r.PercentChange),
				)
			} else {
				cells = append(cells, "", "", "")
			}
		}
		rows = append(rows, cells)
	}
	return rows
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}

// RenderCSV writes the report as CSV.
func RenderCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headerRow(rep)); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range dataRows(rep) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
