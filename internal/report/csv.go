package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// header is the fixed CSV column set, one row per graded submission.
var header = []string{
	"Last Name",
	"First Name",
	"Final Score",
	"Extra Credit",
	"Code Quality Assessment",
	"Requirements Analysis",
	"Point Deductions",
	"Overall Assessment",
	"Areas for Improvement",
}

// Writer serializes rows to a CSV file. The write is guarded by a mutex
// so concurrent finalizations can never interleave output in the same
// destination.
type Writer struct {
	mu sync.Mutex
}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write creates (or truncates) path and writes the header plus one
// record per row. Rows are written in the order given; callers sort
// via Sink.Drain first.
func (w *Writer) Write(path string, rows []Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.LastName,
			row.FirstName,
			row.FinalScore,
			row.ExtraCredit,
			row.CodeQuality,
			row.RequirementsAnalysis,
			row.PointDeductions,
			row.OverallAssessment,
			row.AreasForImprovement,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s: %w", row.StudentName, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return f.Close()
}
