package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"gravity/internal/api"
	"gravity/internal/catalog"
	"gravity/internal/config"
	"gravity/internal/driver"
	"gravity/internal/formatting"
	"gravity/internal/orchestrator"
	"gravity/internal/resolver"
	"gravity/pkg/logging"
)

var (
	upCatalogDir        string
	upConfigDir         string
	upDriver            string
	upOutputFormat      string
	upDebug             bool
	upRollbackOnFailure bool
)

// upCmd resolves the catalog and drives the whole stack to Ready.
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Resolve the catalog and start every service",
	Long: `Resolves the catalog into an installation order, then provisions data
stores, starts services and health checks them until every service is
ready. Services on independent branches of the dependency graph start
concurrently; a service waits for the services it requires to become
ready first.

A failing service blocks only its dependents. The command prints a
per-service report when the run finishes and exits non-zero unless every
service became ready. Ctrl+C cancels the run: services mid-phase are
marked failed, waiting services stay pending.

With --rollback-on-failure a run that does not end with every service
ready is unwound again: started services are stopped and provisioned
stores dropped, in reverse installation order.`,
	Args: cobra.NoArgs,
	RunE: runUp,
}

func runUp(cmd *cobra.Command, args []string) error {
	format, err := formatting.ParseFormat(upOutputFormat)
	if err != nil {
		return err
	}

	level := logging.LevelWarn
	if upDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	configDir := upConfigDir
	if configDir == "" {
		configDir = config.GetDefaultConfigPathOrPanic()
	}
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	descriptors, err := catalog.LoadDirectory(upCatalogDir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	plan, err := resolver.ResolvePlan(descriptors)
	if err != nil {
		return err
	}

	drivers, err := driver.New(upDriver)
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(orchestrator.Config{
		Plan:         plan,
		Descriptors:  descriptors,
		Backend:      drivers.Backend,
		Runtime:      drivers.Runtime,
		Probe:        drivers.Probe,
		Orchestrator: cfg.Orchestrator,
	})
	if err != nil {
		return err
	}
	api.RegisterOrchestrator(orch)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go watchProgress(ctx, orch, done)

	report, err := orch.Run(ctx)
	close(done)
	if err != nil {
		return err
	}

	if upRollbackOnFailure && report.Outcome != api.OutcomeAllReady {
		logging.Warn("CLI", "Run ended with %s, rolling back", report.Outcome)
		rollbackReport, rollbackErr := orch.Rollback(context.Background())
		if rollbackErr != nil {
			return rollbackErr
		}
		report = rollbackReport
	}

	if err := formatting.RenderReport(cmd.OutOrStdout(), format, report); err != nil {
		return err
	}

	if report.Outcome != api.OutcomeAllReady {
		return &outcomeError{outcome: report.Outcome}
	}
	return nil
}

// watchProgress shows a spinner with the latest lifecycle transition while
// the run is in flight. Debug mode logs every transition instead; the two
// would garble each other on the same terminal.
func watchProgress(ctx context.Context, orch *orchestrator.Orchestrator, done <-chan struct{}) {
	if upDebug {
		return
	}

	events := orch.Subscribe()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " starting services..."
	s.Start()
	defer s.Stop()

	cancelled := ctx.Done()
	for {
		select {
		case event := <-events:
			s.Suffix = fmt.Sprintf(" %s: %s", event.Name, event.NewState)
		case <-cancelled:
			s.Suffix = " cancelling..."
			cancelled = nil
		case <-done:
			return
		}
	}
}

func init() {
	upCmd.Flags().StringVarP(&upCatalogDir, "catalog", "c", "catalog", "directory containing service descriptor YAML files")
	upCmd.Flags().StringVar(&upConfigDir, "config", "", "directory containing config.yaml (default ~/.config/gravity)")
	upCmd.Flags().StringVar(&upDriver, "driver", "docker", "driver backing the run (docker, sim)")
	upCmd.Flags().StringVarP(&upOutputFormat, "output", "o", "table", "output format (table, yaml, json)")
	upCmd.Flags().BoolVar(&upDebug, "debug", false, "enable verbose logging")
	upCmd.Flags().BoolVar(&upRollbackOnFailure, "rollback-on-failure", false, "unwind the run if not every service becomes ready")
	rootCmd.AddCommand(upCmd)
}
