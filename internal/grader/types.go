// Package grader turns one submission plus the assignment guidelines
// into a structured grading result via the LLM oracle.
package grader

// SyntaxIssue is a single syntax error the oracle found.
type SyntaxIssue struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

// CompilationTest is the oracle's judgment of whether the code compiles.
type CompilationTest struct {
	Compiles bool     `json:"compiles"`
	Errors   []string `json:"errors"`
}

// RuntimeSimulation summarizes the oracle's mental execution of the
// program. Status is one of "success", "warning", "error".
type RuntimeSimulation struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
	Details string `json:"details"`
}

// RequirementAssessment records whether one assignment requirement was met.
type RequirementAssessment struct {
	Requirement string `json:"requirement"`
	Met         bool   `json:"met"`
	Explanation string `json:"explanation"`
}

// PointDeduction is one deduction with its reason.
type PointDeduction struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
}

// ExtraCredit records any points awarded beyond the assignment's base.
type ExtraCredit struct {
	Awarded bool    `json:"awarded"`
	Points  float64 `json:"points"`
	Reason  string  `json:"reason"`
}

// Result is the full grading payload for one submission. Exactly one
// Result exists per discovered submission: either the oracle's answer or
// the failure placeholder.
type Result struct {
	StudentName string
	MaxPoints   int

	SyntaxCheck            []SyntaxIssue           `json:"syntax_check"`
	CompilationTest        CompilationTest         `json:"compilation_test"`
	LogicalErrors          []string                `json:"logical_errors"`
	RuntimeSimulation      RuntimeSimulation       `json:"runtime_simulation"`
	Requirements           []RequirementAssessment `json:"requirements_assessment"`
	CodeQuality            string                  `json:"code_quality"`
	PointDeductions        []PointDeduction        `json:"point_deductions"`
	ExtraCredit            ExtraCredit             `json:"extra_credit"`
	FinalScore             float64                 `json:"final_score"`
	OverallAssessment      string                  `json:"overall_assessment"`
	ImprovementSuggestions []string                `json:"improvement_suggestions"`
	CommentConsideration   string                  `json:"comment_consideration"`

	// Failed marks a placeholder produced after an oracle failure.
	Failed bool
}
