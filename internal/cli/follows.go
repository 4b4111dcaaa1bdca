package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/cli/shared"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

var followsCmd = &cobra.Command{
	Use:     "follows",
	Short:   "Print the channels a user follows",
	GroupID: GroupMonitoring,
	Long: `Load the complete follow list of a user, page by page, and print one
channel per line in the order the API returns them. This is the set of
channels the daemon watches.`,
	Example: `  twnotify follows -u alice
  twnotify follows -u alice --client-id abc123`,
	Args: noArgs,
	RunE: runFollows,
}

func runFollows(cmd *cobra.Command, _ []string) error {
	cfg, err := loadUserConfig(cmd)
	if err != nil {
		return err
	}

	display := newDisplay(cmd)
	display.Start(fmt.Sprintf("Loading channels followed by %s", cfg.Username))
	follows, err := newAPIClient(cfg).Follows(commandContext(cmd), cfg.Username)
	if err != nil {
		display.Fail(err)
		return shared.NewExitError(shared.ExitFailure)
	}
	display.Succeed(fmt.Sprintf("%s follows %d channels", cfg.Username, len(follows)))

	return printFollows(cmd, follows)
}

func printFollows(cmd *cobra.Command, follows []twitch.Follow) error {
	if len(follows) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tURL")
	for _, f := range follows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name(), f.Channel.DisplayName, f.Channel.URL)
	}
	return w.Flush()
}
