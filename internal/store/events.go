package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LLMCallData captures one oracle call for the audit log.
type LLMCallData struct {
	RunID        string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMCall is a recorded oracle call.
type LLMCall struct {
	ID        int
	Timestamp time.Time
	LLMCallData
}

// UsageStat aggregates calls by one dimension (purpose or model).
type UsageStat struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// QueryOpts configures call queries.
type QueryOpts struct {
	Limit   int    // max results (0 = default 50)
	RunID   string // filter by run
	Purpose string // filter by purpose
}

// EventRepo provides access to the oracle call log.
type EventRepo interface {
	// AppendLLMCall records a single oracle call.
	AppendLLMCall(ctx context.Context, data LLMCallData) error

	// QueryLLMCalls returns recent calls, newest first.
	QueryLLMCalls(ctx context.Context, opts QueryOpts) ([]LLMCall, error)

	// GetLLMCall returns one call by ID, or nil if absent.
	GetLLMCall(ctx context.Context, id int) (*LLMCall, error)

	// UsageByPurpose aggregates token usage grouped by purpose.
	UsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// UsageByModel aggregates token usage grouped by model.
	UsageByModel(ctx context.Context) ([]UsageStat, error)
}

// NopEventRepo discards all events. Used when the store cannot be opened
// so grading still works without an audit trail.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMCall(context.Context, LLMCallData) error { return nil }
func (NopEventRepo) QueryLLMCalls(context.Context, QueryOpts) ([]LLMCall, error) {
	return nil, nil
}
func (NopEventRepo) GetLLMCall(context.Context, int) (*LLMCall, error)  { return nil, nil }
func (NopEventRepo) UsageByPurpose(context.Context) ([]UsageStat, error) { return nil, nil }
func (NopEventRepo) UsageByModel(context.Context) ([]UsageStat, error)   { return nil, nil }

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMCall(ctx context.Context, data LLMCallData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_calls
			(timestamp, run_id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.RunID, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert LLM call: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMCalls(ctx context.Context, opts QueryOpts) ([]LLMCall, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, timestamp, run_id, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, success, error_message
		FROM llm_calls WHERE 1=1`
	var args []any
	if opts.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, opts.RunID)
	}
	if opts.Purpose != "" {
		query += " AND purpose = ?"
		args = append(args, opts.Purpose)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM calls: %w", err)
	}
	defer rows.Close()

	var calls []LLMCall
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, *c)
	}
	return calls, rows.Err()
}

func (r *eventRepo) GetLLMCall(ctx context.Context, id int) (*LLMCall, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, run_id, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, success, error_message
		FROM llm_calls WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get LLM call: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCall(rows)
}

func (r *eventRepo) UsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "purpose")
}

func (r *eventRepo) UsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "model")
}

func (r *eventRepo) usageBy(ctx context.Context, column string) ([]UsageStat, error) {
	// column is one of two fixed identifiers, never user input.
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_calls GROUP BY %s ORDER BY SUM(input_tokens) + SUM(output_tokens) DESC`,
		column, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		if err := rows.Scan(&s.Key, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func scanCall(rows *sql.Rows) (*LLMCall, error) {
	var c LLMCall
	if err := rows.Scan(
		&c.ID, &c.Timestamp, &c.RunID, &c.Provider, &c.Model, &c.Purpose,
		&c.InputTokens, &c.OutputTokens, &c.LatencyMs, &c.Success, &c.ErrorMessage,
	); err != nil {
		return nil, fmt.Errorf("scan LLM call: %w", err)
	}
	return &c, nil
}
