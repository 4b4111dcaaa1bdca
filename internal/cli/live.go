package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/cli/shared"
	"github.com/ariel-frischer/twnotify/internal/status"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

var liveCmd = &cobra.Command{
	Use:     "live",
	Short:   "Print the followed channels that are live right now",
	GroupID: GroupMonitoring,
	Long: `Load the follow list, run a single status fetch with the configured
strategy and print the channels that are currently live. No notifications are
raised.`,
	Example: `  twnotify live -u alice
  twnotify live -u alice --strategy per-channel`,
	Args: noArgs,
	RunE: runLive,
}

func runLive(cmd *cobra.Command, _ []string) error {
	cfg, err := loadUserConfig(cmd)
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	fetcher, err := status.New(status.Strategy(cfg.Strategy), client)
	if err != nil {
		return invalid(err)
	}

	ctx := commandContext(cmd)
	display := newDisplay(cmd)

	display.Start(fmt.Sprintf("Loading channels followed by %s", cfg.Username))
	follows, err := client.Follows(ctx, cfg.Username)
	if err != nil {
		display.Fail(err)
		return shared.NewExitError(shared.ExitFailure)
	}
	names := uniqueNames(follows)

	display.Start(fmt.Sprintf("Checking %d channels", len(names)))
	live, err := fetcher.Fetch(ctx, names)
	if err != nil {
		display.Fail(err)
		return shared.NewExitError(shared.ExitFailure)
	}

	streams := make([]*twitch.Stream, 0, len(live))
	for _, name := range names {
		if s := live[name]; s != nil {
			streams = append(streams, s)
		}
	}
	display.Succeed(fmt.Sprintf("%d of %d channels live", len(streams), len(names)))

	return printStreams(cmd, streams)
}

// uniqueNames returns follow names in API order without duplicates.
func uniqueNames(follows []twitch.Follow) []string {
	seen := make(map[string]struct{}, len(follows))
	names := make([]string, 0, len(follows))
	for _, f := range follows {
		if _, ok := seen[f.Name()]; ok {
			continue
		}
		seen[f.Name()] = struct{}{}
		names = append(names, f.Name())
	}
	return names
}

func printStreams(cmd *cobra.Command, streams []*twitch.Stream) error {
	if len(streams) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tGAME\tVIEWERS\tTITLE\tURL")
	for _, s := range streams {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", s.DisplayName(), s.Game, s.Viewers, s.Channel.Status, s.Channel.URL)
	}
	return w.Flush()
}
