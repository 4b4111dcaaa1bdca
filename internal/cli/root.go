// twnotify - desktop notifications when followed channels go live
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/twnotify

// Package cli provides the Cobra-based command line for twnotify. The root
// command runs the notification daemon; follows, live, doctor and version are
// one-shot helpers.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/cli/shared"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupMonitoring    = shared.GroupMonitoring
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "twnotify",
	Short: "Desktop notifications when followed channels go live",
	Long: `twnotify watches the channels a user follows and raises a desktop
notification when one of them goes live.

The follow list is loaded once per poll loop. Every interval the live status
of all followed channels is fetched; a channel that was offline and is now
live produces one notification with its game, title and URL. Channels already
live when twnotify starts are not announced.

Failures are written to stderr and, when --logfile is set, appended to the log
file with a timestamp. The loop then restarts and reloads the follow list.

Source: https://github.com/ariel-frischer/twnotify`,
	Example: `  # Watch the channels alice follows, polling every two minutes
  twnotify -u alice

  # Poll every minute and keep a failure log
  twnotify -u alice --interval 60 --logfile ~/.local/state/twnotify.log

  # Expose /healthz, /streams and /metrics on localhost
  twnotify -u alice --listen 127.0.0.1:9090

  # One-shot helpers
  twnotify follows -u alice
  twnotify live -u alice
  twnotify doctor`,
	Args:          noArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

// Execute runs the root command and reports the error, if any, on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.Silent(err) {
		red := color.New(color.FgRed, color.Bold).SprintFunc()
		fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", red("Error:"), err)
	}
	return err
}

// flagKeys maps CLI flag names to configuration keys. Only flags the user
// actually set override the other configuration layers.
var flagKeys = map[string]string{
	"username":    "username",
	"interval":    "interval",
	"logfile":     "logfile",
	"strategy":    "strategy",
	"api-url":     "api_base_url",
	"client-id":   "client_id",
	"timeout":     "http_timeout",
	"retry-delay": "retry_delay",
	"listen":      "listen_addr",
	"log-level":   "log_level",
	"log-format":  "log_format",
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupMonitoring, Title: "Monitoring:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return shared.WrapExitError(shared.ExitInvalidArguments, err)
	})

	addGlobalFlags(rootCmd)
	addDaemonFlags(rootCmd)

	rootCmd.AddCommand(followsCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "Path to a config file (JSON or YAML)")
	pf.StringP("username", "u", "", "User whose followed channels are watched")
	pf.String("strategy", "batched", "Status fetch strategy: batched or per-channel")
	pf.String("api-url", "", "API base URL (default https://api.twitch.tv/kraken)")
	pf.String("client-id", "", "Client-ID header sent with API requests")
	pf.Int("timeout", 30, "HTTP timeout in seconds")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
}

func addDaemonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("interval", 120, "Seconds between poll cycles")
	f.String("logfile", "", "Append failures to this file")
	f.Int("retry-delay", 0, "Seconds to wait before restarting the poll loop after a failure")
	f.String("listen", "", "Serve /healthz, /streams and /metrics on host:port")
}

// noArgs is cobra.NoArgs reported as an invalid-arguments exit.
func noArgs(cmd *cobra.Command, args []string) error {
	return shared.WrapExitError(shared.ExitInvalidArguments, cobra.NoArgs(cmd, args))
}
