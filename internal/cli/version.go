package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/build"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	GroupID: GroupConfiguration,
	Long:    "Display version, commit, build date and platform information for twnotify",
	Example: `  # Show version information
  twnotify version

  # Machine-readable output
  twnotify version --plain`,
	Args: noArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout())
	},
}

func init() {
	versionCmd.Flags().Bool("plain", false, "Plain output without colors")
}

// printPlainVersion prints version info without colors, one field per line
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "%s %s\n", build.AppName, build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(out io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := build.Version
	if build.IsDevBuild() {
		version += " " + dim("(development build)")
	}

	fmt.Fprintf(out, "%s %s\n", cyan(build.AppName), version)
	fmt.Fprintf(out, "  %s %s\n", dim("commit  "), truncateCommit(build.Commit))
	fmt.Fprintf(out, "  %s %s\n", dim("built   "), build.BuildDate)
	fmt.Fprintf(out, "  %s %s\n", dim("go      "), runtime.Version())
	fmt.Fprintf(out, "  %s %s/%s\n", dim("platform"), runtime.GOOS, runtime.GOARCH)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
