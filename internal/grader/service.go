package grader

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gradeline/gradeline/internal/llm"
	"github.com/gradeline/gradeline/internal/submission"
)

// Service grades submissions against one set of guidelines and one
// point budget. It is safe for concurrent use: the provider carries all
// mutable state and is itself concurrency-safe.
type Service struct {
	provider   llm.Provider
	guidelines string
	maxPoints  int
	cfg        Config
}

// NewService creates a grading service.
func NewService(provider llm.Provider, guidelines string, maxPoints int, cfg Config) *Service {
	return &Service{
		provider:   provider,
		guidelines: guidelines,
		maxPoints:  maxPoints,
		cfg:        cfg,
	}
}

// MaxPoints returns the point budget this service grades against.
func (s *Service) MaxPoints() int {
	return s.maxPoints
}

// Grade sends one submission to the oracle and parses the structured
// result. Any failure (network, refusal, malformed output) is returned
// as an error; the caller converts it to a placeholder so the report
// still has one row per submission.
func (s *Service) Grade(ctx context.Context, sub submission.Submission) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "grade")

	req := llm.Request{
		System:      gradingSystemPrompt,
		Prompt:      buildGradingPrompt(sub.Files, s.guidelines, s.cfg.StudentComment, s.maxPoints),
		Schema:      ResultSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grade %s: %w", sub.StudentName, err)
	}

	var result Result
	if err := json.Unmarshal(resp.Content, &result); err != nil {
		return nil, fmt.Errorf("parse grading result for %s: %w", sub.StudentName, err)
	}

	result.StudentName = sub.StudentName
	result.MaxPoints = s.maxPoints

	return &result, nil
}

// Placeholder synthesizes the fixed failure result for a submission the
// oracle could not grade. Row-count invariants depend on this: one
// result per submission, success or not.
func Placeholder(sub submission.Submission, maxPoints int) *Result {
	return &Result{
		StudentName:            sub.StudentName,
		MaxPoints:              maxPoints,
		FinalScore:             0,
		CodeQuality:            "Error during grading",
		ExtraCredit:            ExtraCredit{Awarded: false},
		OverallAssessment:      "Failed to grade submission",
		ImprovementSuggestions: []string{"Please resubmit or contact instructor"},
		Failed:                 true,
	}
}
