// Package cmd provides the gradeline CLI: grade, collect, rename, and
// the llm audit subcommands.
package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gradeline/gradeline/internal/llm"
	"github.com/gradeline/gradeline/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "gradeline",
	Short: "AI-assisted batch grading for programming assignments",
	Long:  "Gradeline grades directories of student submissions against assignment guidelines using an LLM, and writes per-student feedback to CSV.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configureLogger(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GRADELINE_DB env var)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openai, anthropic, gemini (overrides GRADELINE_PROVIDER)")
	rootCmd.PersistentFlags().String("model", "", "Model override for the selected provider")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug detail to stderr")

	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then GRADELINE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit database, degrading to nil when the
// database is unavailable. Grading must never fail on bookkeeping.
func openStore(cmd *cobra.Command) *store.Store {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		log.Warn().Err(err).Msg("audit database path unavailable, continuing without audit log")
		return nil
	}
	s, err := store.Open(dbPath)
	if err != nil {
		log.Warn().Err(err).Str("path", dbPath).Msg("audit database unavailable, continuing without audit log")
		return nil
	}
	return s
}

// buildProvider assembles the configured oracle provider with its
// middleware stack, honoring --provider/--model overrides.
func buildProvider(ctx context.Context, cmd *cobra.Command, events store.EventRepo) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = p
	}
	if m, _ := cmd.Flags().GetString("model"); m != "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.Anthropic.Model = m
		case "gemini":
			cfg.Gemini.Model = m
		default:
			cfg.OpenAI.Model = m
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, cfg, events)
}
