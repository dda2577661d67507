package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradeline/gradeline/internal/collect"
)

var collectCmd = &cobra.Command{
	Use:   "collect <export-dir>... <output-dir>",
	Short: "Flatten LMS export directories into a submissions directory",
	Long: `Collect merges one or more Brightspace bulk-download trees into a single
flat directory, keeping the most recent upload per student and
preferring archives over bare source files.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		srcDirs, dstDir := args[:len(args)-1], args[len(args)-1]

		for _, dir := range srcDirs {
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a valid directory", dir)
			}
		}

		stats, err := collect.Run(srcDirs, dstDir)
		if err != nil {
			return err
		}

		if stats.Students == 0 {
			fmt.Println("No submissions found.")
			return nil
		}
		fmt.Printf("Collection complete! %d file(s) copied to %s\n", stats.Copied, dstDir)
		if stats.Skipped > 0 {
			fmt.Printf("%d student(s) had no gradeable file; see the log for details.\n", stats.Skipped)
		}
		return nil
	},
}
