package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"gravity/internal/api"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodePartialFailure indicates a run finished with failed services.
	ExitCodePartialFailure = 2
	// ExitCodeAborted indicates a run was cancelled before completion.
	ExitCodeAborted = 3
)

// rootCmd represents the base command for the gravity application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gravity",
	Short: "Resolve service dependencies and orchestrate their start-up",
	Long: `gravity reads a catalog of service descriptors, resolves their semantic
version constraints into an installation order and drives every service
through provisioning, start and health checking until the stack is ready.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command.
// This is called from the main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// It is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gravity version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// outcomeError carries a run outcome through Cobra's error return so Execute
// can map it to an exit code.
type outcomeError struct {
	outcome api.RunOutcome
}

func (e *outcomeError) Error() string {
	return "run finished with outcome " + string(e.outcome)
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var outcome *outcomeError
	if errors.As(err, &outcome) {
		switch outcome.outcome {
		case api.OutcomeAbortedByUser:
			return ExitCodeAborted
		case api.OutcomePartialFailure:
			return ExitCodePartialFailure
		}
	}
	if api.IsCancelled(err) {
		return ExitCodeAborted
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
