package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/health"
	"github.com/ariel-frischer/twnotify/internal/notify"
)

// newSender opens the notification backend that doctor checks.
var newSender = notify.NewSender

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Run health checks for twnotify dependencies",
	GroupID: GroupConfiguration,
	Long: `Run health checks to verify that twnotify can do its job.

This command checks for:
  - A desktop notification service (D-Bus on Linux)
  - A reachable stream API at the configured base URL
  - An appendable log file, when one is configured

Each check will display a ✓ if passed or ✗ with an error message if failed.`,
	Args: noArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := health.Options{
		APIBaseURL: cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		LogFile:    cfg.LogFile,
	}
	sender, err := newSender()
	if err != nil {
		opts.BackendErr = err
	} else {
		opts.Backend = sender
		defer sender.Close()
	}

	report := health.RunHealthChecks(commandContext(cmd), opts)
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return NewExitError(ExitMissingDependencies)
	}
	return nil
}
