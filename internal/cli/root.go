// Package cli wires the activityhub commands: serve runs the API,
// seed writes the sample dataset, demo walks the schema end to end.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all subcommands.
type RootOptions struct {
	ConfigFile string
}

// NewRootCommand creates the activityhub root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "activityhub",
		Short:         "Extracurricular activity signups for Mergington High School",
		Long:          "Activityhub keeps student activity signups in an in-memory star schema\nand serves them over a JSON API. Data enters through Excel workbooks,\nCSV files, or the signup endpoint.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
