package config

import (
	"os"
	"path/filepath"
)

// configFileNames are tried in order inside the user config directory.
var configFileNames = []string{"config.json", "config.yml", "config.yaml"}

// UserConfigDir returns $XDG_CONFIG_HOME/twnotify, falling back to
// ~/.config/twnotify.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "twnotify")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "twnotify")
}

// UserConfigPath returns the first existing user config file, or "".
func UserConfigPath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range configFileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
