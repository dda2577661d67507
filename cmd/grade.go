package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gradeline/gradeline/internal/grader"
	"github.com/gradeline/gradeline/internal/llm"
	"github.com/gradeline/gradeline/internal/pipeline"
	"github.com/gradeline/gradeline/internal/report"
	"github.com/gradeline/gradeline/internal/store"
	"github.com/gradeline/gradeline/internal/submission"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <submissions-dir> <guidelines-file>",
	Short: "Grade every submission in a directory",
	Long: `Grade processes student submissions (.java files or .zip archives of
.java files) against an assignment guidelines file and writes one CSV
row of feedback per student.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		submissionsDir, guidelinesPath := args[0], args[1]

		maxPoints, _ := cmd.Flags().GetInt("max-points")
		workers, _ := cmd.Flags().GetInt("workers")
		output, _ := cmd.Flags().GetString("output")
		sortFlag, _ := cmd.Flags().GetString("sort")
		comment, _ := cmd.Flags().GetString("comment")

		// Pre-flight: every configuration problem must surface before a
		// single oracle call is made or a single byte is written.
		info, err := os.Stat(submissionsDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a valid directory", submissionsDir)
		}
		guidelines, err := os.ReadFile(guidelinesPath)
		if err != nil {
			return fmt.Errorf("read guidelines: %w", err)
		}
		if maxPoints < 1 {
			return fmt.Errorf("max points must be positive, got %d", maxPoints)
		}
		sortBy, ok := report.ParseSortKey(sortFlag)
		if !ok {
			return fmt.Errorf("invalid sort key %q (want name or identity)", sortFlag)
		}
		pool, err := pipeline.NewPool(workers, pipeline.WithProgress(printProgress))
		if err != nil {
			return err
		}
		if output == "" {
			output = filepath.Join(submissionsDir, viper.GetString(outputKey))
		}

		s := openStore(cmd)
		var events store.EventRepo = store.NopEventRepo{}
		var runs store.RunRepo = store.NopRunRepo{}
		if s != nil {
			defer s.Close()
			events = s.EventRepo()
			runs = s.RunRepo()
		}

		ctx := cmd.Context()
		provider, err := buildProvider(ctx, cmd, events)
		if err != nil {
			return err
		}

		runID, err := runs.Begin(ctx, submissionsDir, maxPoints, workers)
		if err != nil {
			log.Warn().Err(err).Msg("could not record run start")
		}
		ctx = llm.WithRun(ctx, runID)

		subs, err := submission.Discover(submissionsDir)
		if err != nil {
			return fmt.Errorf("discover submissions: %w", err)
		}
		if len(subs) == 0 {
			fmt.Println("No submissions found.")
			return nil
		}
		fmt.Printf("Grading %d submissions with %d worker(s)...\n", len(subs), workers)

		gcfg := grader.DefaultConfig()
		gcfg.StudentComment = comment
		svc := grader.NewService(provider, string(guidelines), maxPoints, gcfg)

		sink := report.NewSink()
		failures := pool.Run(ctx, subs, svc, sink)

		rows := sink.Drain(sortBy)
		if err := report.NewWriter().Write(output, rows); err != nil {
			return err
		}

		if err := runs.Finish(context.WithoutCancel(ctx), runID, output, len(subs), failures); err != nil {
			log.Warn().Err(err).Msg("could not record run completion")
		}

		fmt.Println()
		report.RenderSummary(os.Stdout, rows)
		fmt.Printf("\nResults written to %s\n", output)
		if failures > 0 {
			fmt.Printf("%d submission(s) could not be graded; see the log for details.\n", failures)
		}
		return nil
	},
}

func printProgress(completed, total int) {
	fmt.Printf("\rGraded %d/%d", completed, total)
	if completed == total {
		fmt.Println()
	}
}

func init() {
	gradeCmd.Flags().Int("max-points", viper.GetInt(maxPointsKey), "Maximum points possible for the assignment")
	gradeCmd.Flags().IntP("workers", "w", viper.GetInt(workersKey), "Number of parallel grading workers")
	gradeCmd.Flags().StringP("output", "o", "", "Output CSV path (default: grading_results.csv in the submissions directory)")
	gradeCmd.Flags().String("sort", viper.GetString(sortKey), "Row order: name (last, first) or identity (raw student name)")
	gradeCmd.Flags().String("comment", "", "Instructor note the grader should weigh for every submission")
}
