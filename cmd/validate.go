package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gravity/internal/catalog"
	"gravity/internal/dependency"
)

var validateCatalogDir string

// validateCmd checks the catalog without resolving versions or running
// anything: descriptor structure, dependency targets and cycles.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for structural problems",
	Long: `Loads every service descriptor from the catalog directory and checks for
structural problems: duplicate or empty names, unparsable versions or
ranges, self-references, unknown dependency targets and dependency
cycles. Version constraints are not resolved; use 'gravity plan' for
that.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	descriptors, err := catalog.LoadDirectory(validateCatalogDir)
	if err != nil {
		return err
	}

	g, err := dependency.Build(descriptors)
	if err != nil {
		return err
	}
	if _, err := g.Order(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Catalog OK: %d service(s), %d dependency edge(s)\n",
		len(descriptors), len(g.Edges()))
	return nil
}

func init() {
	validateCmd.Flags().StringVarP(&validateCatalogDir, "catalog", "c", "catalog", "directory containing service descriptor YAML files")
	rootCmd.AddCommand(validateCmd)
}
