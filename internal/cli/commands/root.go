package commands

import (
	"github.com/spf13/cobra"

	"github.com/objectkit/objectkit/internal/cli/config"
)

// NewRootCommand builds the objectkit command tree.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "objectkit",
		Short: "Inspection tooling for objectkit class hierarchies",
		Long: `objectkit is a runtime object model whose instances self-describe.

This tool loads declarative hierarchy descriptions and inspects them:
ancestor chains, visible constructor parameters, and the named argument
bindings a construction call would record.`,
	}

	rootCmd.AddCommand(NewInspectCommand(cfg))
	return rootCmd
}
