package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gravity/internal/catalog"
	"gravity/internal/formatting"
	"gravity/internal/resolver"
)

// planCatalogDir is the directory holding service descriptor files.
var planCatalogDir string

// planOutputFormat selects table, yaml or json output.
var planOutputFormat string

// planCmd resolves the catalog into an installation order without running
// anything. It is the dry-run counterpart of 'gravity up'.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Resolve the catalog and print the installation order",
	Long: `Reads every service descriptor from the catalog directory, resolves the
semantic version constraints between them and prints the resulting
installation order with the version pinned for each service.

Resolution is all-or-nothing: an unsatisfiable constraint or a dependency
cycle fails the command without producing a partial plan.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(planOutputFormat)
	if err != nil {
		return err
	}

	descriptors, err := catalog.LoadDirectory(planCatalogDir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	plan, err := resolver.ResolvePlan(descriptors)
	if err != nil {
		return err
	}

	return formatting.RenderPlan(cmd.OutOrStdout(), format, plan)
}

func init() {
	planCmd.Flags().StringVarP(&planCatalogDir, "catalog", "c", "catalog", "directory containing service descriptor YAML files")
	planCmd.Flags().StringVarP(&planOutputFormat, "output", "o", "table", "output format (table, yaml, json)")
	rootCmd.AddCommand(planCmd)
}
