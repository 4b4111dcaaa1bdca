package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/build"
	"github.com/ariel-frischer/twnotify/internal/cli/shared"
	"github.com/ariel-frischer/twnotify/internal/config"
	"github.com/ariel-frischer/twnotify/internal/progress"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

// loadConfig layers the flags the user set on top of the config files and
// environment.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	overrides := make(map[string]interface{})
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWithOverrides(path, overrides)
	if err != nil {
		return nil, invalid(err)
	}
	return cfg, nil
}

// loadUserConfig is loadConfig for commands that need a username.
func loadUserConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireUsername(); err != nil {
		return nil, invalid(err)
	}
	return cfg, nil
}

func newAPIClient(cfg *config.Configuration) *twitch.Client {
	return twitch.NewClient(twitch.Options{
		BaseURL:    cfg.APIBaseURL,
		ClientID:   cfg.ClientID,
		UserAgent:  build.UserAgent(),
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
	})
}

// newDisplay shows progress on the command's stderr; the spinner only runs
// when that is a terminal.
func newDisplay(cmd *cobra.Command) *progress.Display {
	w := cmd.ErrOrStderr()
	var caps progress.TerminalCapabilities
	if f, ok := w.(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}
	return progress.NewDisplay(w, caps)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func invalid(err error) error {
	return shared.WrapExitError(shared.ExitInvalidArguments, err)
}
