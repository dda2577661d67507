package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradeline/gradeline/internal/grader"
	"github.com/gradeline/gradeline/internal/report"
	"github.com/gradeline/gradeline/internal/submission"
)

// stubGrader scores every submission by name, with configurable per-name
// failures and panics. Safe under concurrent workers.
type stubGrader struct {
	mu     sync.Mutex
	fail   map[string]bool
	panics map[string]bool
	calls  int
}

func (s *stubGrader) Grade(_ context.Context, sub submission.Submission) (*grader.Result, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.panics[sub.StudentName] {
		panic("boom")
	}
	if s.fail[sub.StudentName] {
		return nil, errors.New("oracle unavailable")
	}
	return &grader.Result{
		StudentName:       sub.StudentName,
		MaxPoints:         100,
		FinalScore:        90,
		OverallAssessment: "ok",
	}, nil
}

func (s *stubGrader) MaxPoints() int { return 100 }

func makeSubs(n int) []submission.Submission {
	subs := make([]submission.Submission, n)
	for i := range subs {
		subs[i] = submission.Submission{StudentName: fmt.Sprintf("Student %02d", i)}
	}
	return subs
}

func TestNewPool_RejectsNonPositiveWorkers(t *testing.T) {
	for _, workers := range []int{0, -1} {
		_, err := NewPool(workers)
		require.Error(t, err)
		var cfgErr *ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	}
}

func TestPool_OneRowPerSubmission(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)

	subs := makeSubs(10)
	sink := report.NewSink()
	failures := pool.Run(context.Background(), subs, &stubGrader{}, sink)

	assert.Zero(t, failures)
	assert.Equal(t, len(subs), sink.Len())
	assert.Equal(t, len(subs), pool.Completed())
}

func TestPool_SameRowSetRegardlessOfWorkers(t *testing.T) {
	subs := makeSubs(12)

	run := func(workers int) []report.Row {
		pool, err := NewPool(workers)
		require.NoError(t, err)
		sink := report.NewSink()
		pool.Run(context.Background(), subs, &stubGrader{}, sink)
		return sink.Drain(report.SortByIdentity)
	}

	assert.Equal(t, run(1), run(8))
}

func TestPool_FailureBecomesPlaceholder(t *testing.T) {
	pool, err := NewPool(3)
	require.NoError(t, err)

	subs := makeSubs(5)
	g := &stubGrader{fail: map[string]bool{"Student 02": true}}
	sink := report.NewSink()
	failures := pool.Run(context.Background(), subs, g, sink)

	assert.Equal(t, 1, failures)
	rows := sink.Drain(report.SortByIdentity)
	require.Len(t, rows, 5)

	// The failed submission still produced a row, with the fixed
	// placeholder texts; siblings are untouched.
	placeholder := rows[2]
	assert.Equal(t, "Student 02", placeholder.StudentName)
	assert.Equal(t, "0/100", placeholder.FinalScore)
	assert.Equal(t, "Failed to grade submission", placeholder.OverallAssessment)
	assert.Equal(t, "90/100", rows[1].FinalScore)
	assert.Equal(t, "90/100", rows[3].FinalScore)
}

func TestPool_PanicBecomesPlaceholder(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)

	subs := makeSubs(4)
	g := &stubGrader{panics: map[string]bool{"Student 01": true}}
	sink := report.NewSink()
	failures := pool.Run(context.Background(), subs, g, sink)

	assert.Equal(t, 1, failures)
	rows := sink.Drain(report.SortByIdentity)
	require.Len(t, rows, 4)
	assert.Equal(t, "0/100", rows[1].FinalScore)
}

func TestPool_ProgressIsMonotonic(t *testing.T) {
	var mu sync.Mutex
	var seen []int
	pool, err := NewPool(1, WithProgress(func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, completed)
		assert.Equal(t, 6, total)
	}))
	require.NoError(t, err)

	pool.Run(context.Background(), makeSubs(6), &stubGrader{}, report.NewSink())

	require.Len(t, seen, 6)
	for i, c := range seen {
		assert.Equal(t, i+1, c)
	}
}
