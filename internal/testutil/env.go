// Package testutil provides test utilities and helpers for twnotify tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// envPrefix matches config.EnvPrefix; testutil does not import config so
// that config's own tests can use it.
const envPrefix = "TWNOTIFY_"

// IsolateEnv gives the test an empty home directory, points the user config
// lookup into it, makes it the working directory and unsets every TWNOTIFY_
// variable. All changes are undone when the test ends.
// Tests using it cannot run in parallel.
func IsolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	ClearConfigEnv(t)
	t.Chdir(dir)
	return dir
}

// ClearConfigEnv unsets every TWNOTIFY_ variable for the duration of the test.
func ClearConfigEnv(t *testing.T) {
	t.Helper()

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, envPrefix) {
			continue
		}
		// Setenv registers the restore, Unsetenv makes the key absent
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}
