// Package rename normalizes submission filenames to First_Last.ext,
// using the language model to recover student names from the messy
// filenames students actually upload.
package rename

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gradeline/gradeline/internal/llm"
	"github.com/gradeline/gradeline/internal/submission"
)

const analyzeSystemPrompt = `You extract student names from assignment submission filenames. Respond with JSON only.`

// nameSchema constrains the model to exactly the two fields we parse.
var nameSchema = &llm.Schema{
	Name:        "student-name",
	Description: "Student name extracted from a submission filename",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"first_name": map[string]any{"type": "string"},
			"last_name":  map[string]any{"type": "string"},
		},
		"required":             []string{"first_name", "last_name"},
		"additionalProperties": false,
	},
}

// Op is one planned rename. OldPath and NewPath share a directory.
type Op struct {
	OldPath string
	NewPath string
}

// Plan holds the outcome of analyzing a submissions directory.
type Plan struct {
	Ops    []Op
	Failed []string
}

// Analyzer turns filenames into rename operations via the oracle.
type Analyzer struct {
	provider llm.Provider
}

// NewAnalyzer creates an Analyzer backed by the given provider.
func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

// AnalyzeFilename extracts (first, last) from a raw filename. Returns
// an error when the model cannot find a name in the filename.
func (a *Analyzer) AnalyzeFilename(ctx context.Context, filename string) (string, string, error) {
	prompt := fmt.Sprintf(`Extract the student's first and last name from this filename: %s

Common patterns to consider:
- Names may be separated by underscores or spaces
- May include assignment numbers (e.g., asg5, hw5)
- May include additional descriptors (e.g., "part2", "PartB")
- May be in various formats (e.g., "LastFirst" or "FirstLast")

If the student's name is clearly not in the filename, use "n/a" for both fields.
Fix the capitalization and spacing as needed, ex. "john" -> "John"`, filename)

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, "rename"), llm.Request{
		System:    analyzeSystemPrompt,
		Prompt:    prompt,
		Schema:    nameSchema,
		MaxTokens: 256,
	})
	if err != nil {
		return "", "", fmt.Errorf("analyze %s: %w", filename, err)
	}

	var parsed struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return "", "", fmt.Errorf("parse name for %s: %w", filename, err)
	}

	first := strings.TrimSpace(parsed.FirstName)
	last := strings.TrimSpace(parsed.LastName)
	if strings.EqualFold(first, "n/a") || strings.EqualFold(last, "n/a") || first == "" || last == "" {
		return "", "", fmt.Errorf("no student name in %s", filename)
	}
	return first, last, nil
}

// BuildPlan scans dir for submission files and proposes a rename for
// each one not already in First_Last.ext form. Files whose names the
// model cannot resolve land in Failed instead of aborting the plan.
func (a *Analyzer) BuildPlan(ctx context.Context, dir string) (*Plan, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read submissions directory: %w", err)
	}

	plan := &Plan{}
	for _, item := range listing {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		if !strings.HasSuffix(name, submission.SourceSuffix) && !strings.HasSuffix(name, submission.ArchiveSuffix) {
			continue
		}

		first, last, err := a.AnalyzeFilename(ctx, name)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("could not extract student name")
			plan.Failed = append(plan.Failed, name)
			continue
		}

		newName := fmt.Sprintf("%s_%s%s", first, last, filepath.Ext(name))
		if newName == name {
			continue
		}
		plan.Ops = append(plan.Ops, Op{
			OldPath: filepath.Join(dir, name),
			NewPath: filepath.Join(dir, newName),
		})
	}
	return plan, nil
}

// Apply executes every rename in the plan. Stops at the first failure;
// earlier renames are not rolled back.
func (p *Plan) Apply() error {
	for _, op := range p.Ops {
		if err := os.Rename(op.OldPath, op.NewPath); err != nil {
			return fmt.Errorf("rename %s: %w", filepath.Base(op.OldPath), err)
		}
		log.Info().
			Str("from", filepath.Base(op.OldPath)).
			Str("to", filepath.Base(op.NewPath)).
			Msg("renamed submission")
	}
	return nil
}
