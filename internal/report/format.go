// Package report flattens grading results into rows, collects them from
// concurrent workers, and serializes the final CSV.
package report

import (
	"fmt"
	"strings"

	"github.com/gradeline/gradeline/internal/grader"
)

// Row is the flattened, human-readable projection of one grading result.
// Derived from a Result, never mutated.
type Row struct {
	LastName             string
	FirstName            string
	FinalScore           string
	ExtraCredit          string
	CodeQuality          string
	RequirementsAnalysis string
	PointDeductions      string
	OverallAssessment    string
	AreasForImprovement  string

	// StudentName keeps the raw identity for identity-keyed sorting.
	StudentName string
}

// FormatResult flattens a grading result into an output row.
func FormatResult(r *grader.Result) Row {
	last, first := splitName(r.StudentName)

	return Row{
		LastName:             last,
		FirstName:            first,
		FinalScore:           fmt.Sprintf("%s/%d", formatPoints(r.FinalScore), r.MaxPoints),
		ExtraCredit:          formatExtraCredit(r.ExtraCredit),
		CodeQuality:          r.CodeQuality,
		RequirementsAnalysis: formatRequirements(r.Requirements),
		PointDeductions:      formatDeductions(r.PointDeductions),
		OverallAssessment:    r.OverallAssessment,
		AreasForImprovement:  formatSuggestions(r.ImprovementSuggestions),
		StudentName:          r.StudentName,
	}
}

// splitName splits a full name into (last, first). A single token is
// treated as a last name; everything before the final token becomes the
// first name.
func splitName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[len(parts)-1], strings.Join(parts[:len(parts)-1], " ")
	}
}

// formatPoints renders a score without trailing zeros: 85 not 85.0,
// but 87.5 stays 87.5.
func formatPoints(points float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", points), "0"), ".")
}

func formatRequirements(reqs []grader.RequirementAssessment) string {
	var met, unmet []string
	for _, req := range reqs {
		if req.Met {
			met = append(met, req.Requirement)
		} else {
			unmet = append(unmet, fmt.Sprintf("%s: %s", req.Requirement, req.Explanation))
		}
	}

	var sections []string
	if len(met) > 0 {
		sections = append(sections, "Requirements met:\n- "+strings.Join(met, "\n- "))
	}
	if len(unmet) > 0 {
		sections = append(sections, "Requirements not met:\n- "+strings.Join(unmet, "\n- "))
	}
	return strings.Join(sections, "\n\n")
}

func formatDeductions(deductions []grader.PointDeduction) string {
	if len(deductions) == 0 {
		return "No points deducted"
	}
	lines := make([]string, len(deductions))
	for i, d := range deductions {
		lines[i] = fmt.Sprintf("- %s (-%s points)", d.Reason, formatPoints(d.Points))
	}
	return strings.Join(lines, "\n")
}

func formatExtraCredit(ec grader.ExtraCredit) string {
	if !ec.Awarded {
		return "No extra credit awarded"
	}
	return fmt.Sprintf("+%s points: %s", formatPoints(ec.Points), ec.Reason)
}

func formatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return "\n- " + strings.Join(suggestions, "\n- ")
}
