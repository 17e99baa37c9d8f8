package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mergington/activityhub/internal/sample"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Dir string
}

// NewSeedCommand creates the seed command. It writes the bundled sample
// dataset to disk as an Excel workbook plus the three CSV files, ready
// for serve --data-file or for uploading.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the sample dataset to disk",
		Long: `Write the sample dataset (8 students, 5 activities, 10 signups) into a
directory as an Excel workbook and three CSV files.

Example:
  activityhub seed --dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "data", "output directory")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	workbook := filepath.Join(opts.Dir, sample.WorkbookName)
	if err := sample.WriteWorkbook(workbook); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	csvs, err := sample.WriteCSVs(opts.Dir)
	if err != nil {
		return fmt.Errorf("write csv files: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Sample data written:")
	fmt.Fprintf(out, "  %s\n", workbook)
	fmt.Fprintf(out, "  %s\n", csvs.Students)
	fmt.Fprintf(out, "  %s\n", csvs.Activities)
	fmt.Fprintf(out, "  %s\n", csvs.Signups)
	return nil
}
