package grader

// Config tunes the oracle request for grading.
type Config struct {
	// MaxTokens caps the response. Grading results with many requirement
	// entries run long, so the default is generous.
	MaxTokens int

	// Temperature for the grading request. Zero keeps results as
	// reproducible as the oracle allows.
	Temperature float64

	// StudentComment is passed through to the oracle alongside the
	// code. Batch grading has no per-student comments, so this is
	// normally empty.
	StudentComment string
}

// DefaultConfig returns the standard grading configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0,
	}
}
