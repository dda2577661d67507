package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gradeline/gradeline/internal/rename"
	"github.com/gradeline/gradeline/internal/store"
)

var renameCmd = &cobra.Command{
	Use:   "rename <submissions-dir>",
	Short: "Normalize submission filenames to First_Last.ext",
	Long: `Rename scans a submissions directory, uses the LLM to extract student
names from the messy filenames students upload, and renames each file
to First_Last.ext. Planned renames are shown and confirmed before
anything is touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		submissionsDir := args[0]
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		info, err := os.Stat(submissionsDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a valid directory", submissionsDir)
		}

		s := openStore(cmd)
		var events store.EventRepo = store.NopEventRepo{}
		if s != nil {
			defer s.Close()
			events = s.EventRepo()
		}

		ctx := cmd.Context()
		provider, err := buildProvider(ctx, cmd, events)
		if err != nil {
			return err
		}

		plan, err := rename.NewAnalyzer(provider).BuildPlan(ctx, submissionsDir)
		if err != nil {
			return err
		}

		if len(plan.Ops) == 0 {
			fmt.Println("No files to rename.")
			return nil
		}

		fmt.Println("\nPlanned rename operations:")
		for _, op := range plan.Ops {
			fmt.Printf("%s -> %s\n", filepath.Base(op.OldPath), filepath.Base(op.NewPath))
		}
		if len(plan.Failed) > 0 {
			fmt.Println("\nCould not extract a student name from:")
			for _, name := range plan.Failed {
				fmt.Printf("  %s\n", name)
			}
		}

		if dryRun {
			fmt.Println("\nDry run complete. No files were renamed.")
			return nil
		}

		fmt.Print("\nProceed with renames? [y/N]: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Operation cancelled.")
			return nil
		}

		if err := plan.Apply(); err != nil {
			return err
		}
		fmt.Printf("Renamed %d file(s).\n", len(plan.Ops))
		return nil
	},
}

func init() {
	renameCmd.Flags().Bool("dry-run", false, "Show planned renames without executing them")
}
