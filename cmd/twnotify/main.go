// twnotify - desktop notifications when followed channels go live
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/twnotify

package main

import (
	"os"

	"github.com/ariel-frischer/twnotify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
