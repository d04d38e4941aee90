package cmd

import (
	"github.com/spf13/cobra"

	"gravity/internal/driver"
	"gravity/internal/formatting"
)

var (
	statusDriver       string
	statusOutputFormat string
)

// statusCmd reports the state of gravity-managed services as the driver sees
// them. Unlike the report 'up' prints, this works after the run's process has
// exited: the Docker driver derives states from labelled containers.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of gravity-managed services",
	Long: `Lists every service the driver knows about with its lifecycle state.
For the Docker driver this is derived from the labelled containers a
previous 'gravity up' started: a running container counts as ready, an
exited one as failed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(statusOutputFormat)
	if err != nil {
		return err
	}

	drivers, err := driver.New(statusDriver)
	if err != nil {
		return err
	}

	statuses, err := drivers.Status.ServiceStatuses(cmd.Context())
	if err != nil {
		return err
	}
	return formatting.RenderStatus(cmd.OutOrStdout(), format, statuses)
}

func init() {
	statusCmd.Flags().StringVar(&statusDriver, "driver", "docker", "driver backing the query (docker, sim)")
	statusCmd.Flags().StringVarP(&statusOutputFormat, "output", "o", "table", "output format (table, yaml, json)")
	rootCmd.AddCommand(statusCmd)
}
