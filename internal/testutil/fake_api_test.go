package testutil_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/twnotify/internal/testutil"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

func live(name, display string) twitch.Stream {
	return twitch.Stream{Game: "Chess", Channel: twitch.Channel{Name: name, DisplayName: display}}
}

func TestFakeAPI_ServesClient(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, 130)
	for i := 0; i < 130; i++ {
		names = append(names, fmt.Sprintf("chan%03d", i))
	}
	api := testutil.NewFakeAPIBuilder(t).
		WithFollows(names...).
		WithLive(live("chan007", "Seven")).
		Build()
	client := twitch.NewClient(twitch.Options{BaseURL: api.URL(), ClientID: "abc"})
	ctx := context.Background()

	follows, err := client.Follows(ctx, "watcher")
	require.NoError(t, err)
	assert.Len(t, follows, 130)
	api.AssertCallCount(t, "/users/watcher/follows/channels", 2)

	s, err := client.Stream(ctx, "chan007")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Seven", s.DisplayName())

	s, err = client.Stream(ctx, "chan008")
	require.NoError(t, err)
	assert.Nil(t, s)

	streams, err := client.Streams(ctx, []string{"chan006", "chan007"})
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, "chan007", streams[0].Name())

	calls := api.GetCalls()
	require.Len(t, calls, 5)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "abc", calls[0].Header.Get("Client-ID"))
	assert.Equal(t, "chan006,chan007", calls[4].Query.Get("channel"))
	assert.Equal(t, 5, api.GetCallCount())
}

func TestFakeAPI_Failure(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPIBuilder(t).
		WithFollows("alice").
		WithFailure("/streams", http.StatusBadGateway).
		Build()
	client := twitch.NewClient(twitch.Options{BaseURL: api.URL()})

	_, err := client.Follows(context.Background(), "watcher")
	require.NoError(t, err)

	_, err = client.Stream(context.Background(), "alice")
	var statusErr *twitch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)

	api.AssertNotCalled(t, "/users/other")
}

func TestIsolateEnv(t *testing.T) {
	t.Setenv("TWNOTIFY_USERNAME", "leaked")

	dir := testutil.IsolateEnv(t)

	_, set := os.LookupEnv("TWNOTIFY_USERNAME")
	assert.False(t, set)
	assert.Equal(t, dir, os.Getenv("HOME"))
	assert.Equal(t, filepath.Join(dir, ".config"), os.Getenv("XDG_CONFIG_HOME"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileHelpers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yml")
	assert.False(t, testutil.FileExists(path))

	testutil.WriteFile(t, path, "username: alice\n")
	assert.True(t, testutil.FileExists(path))
	assert.Equal(t, "username: alice\n", testutil.ReadFile(t, path))
}
