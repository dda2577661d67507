package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderSummary prints a compact per-student score table to w after the
// CSV has been written. The full feedback lives in the CSV; this is the
// at-a-glance view for the terminal.
func RenderSummary(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Student", "Score", "Extra Credit"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, row := range rows {
		table.Append([]string{row.StudentName, row.FinalScore, row.ExtraCredit})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(rows)), "", ""})
	table.Render()
}
