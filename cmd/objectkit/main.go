package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/objectkit/objectkit/internal/cli/commands"
	"github.com/objectkit/objectkit/internal/cli/config"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := commands.NewRootCommand(cfg)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "objectkit %s (commit %s, built %s)\n",
				Version, GitCommit, BuildDate)
		},
	}
}
