package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/twnotify/internal/metrics"
	"github.com/ariel-frischer/twnotify/internal/tracker"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeFollows struct {
	follows []twitch.Follow
	err     error
	calls   int
}

func (f *fakeFollows) Follows(_ context.Context, _ string) ([]twitch.Follow, error) {
	f.calls++
	return f.follows, f.err
}

// scriptedFetcher returns one live set per cycle, then repeats the last one.
type scriptedFetcher struct {
	cycles []map[string]*twitch.Stream
	err    error
	calls  int
	names  [][]string
}

func (f *scriptedFetcher) Fetch(_ context.Context, names []string) (map[string]*twitch.Stream, error) {
	f.names = append(f.names, names)
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	i := f.calls - 1
	if i >= len(f.cycles) {
		i = len(f.cycles) - 1
	}
	return f.cycles[i], nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	err    error
}

func (n *recordingNotifier) NotifyLive(_ context.Context, s *twitch.Stream) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, s.DisplayName()+" just went live!")
	return n.err
}

// cancelAfter returns a sleep func that cancels after n sleeps.
func cancelAfter(n int, cancel context.CancelFunc) (SleepFunc, *[]time.Duration) {
	var slept []time.Duration
	return func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		if len(slept) >= n {
			cancel()
		}
		return ctx.Err()
	}, &slept
}

func follows(names ...string) []twitch.Follow {
	out := make([]twitch.Follow, len(names))
	for i, n := range names {
		out[i] = twitch.Follow{Channel: twitch.Channel{Name: n}}
	}
	return out
}

func live(name, display, game string) *twitch.Stream {
	return &twitch.Stream{Game: game, Channel: twitch.Channel{Name: name, DisplayName: display}}
}

func TestPoller_AliceScenario(t *testing.T) {
	t.Parallel()

	alice := live("alice", "Alice", "Chess")
	fetcher := &scriptedFetcher{cycles: []map[string]*twitch.Stream{
		{},
		{"alice": alice},
		{"alice": alice},
		{},
		{"alice": alice},
	}}
	notifier := &recordingNotifier{}
	m := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sleep, slept := cancelAfter(5, cancel)

	p := NewPoller(PollerConfig{
		Username: "watcher",
		Interval: 2 * time.Minute,
		Follows:  &fakeFollows{follows: follows("alice")},
		Fetcher:  fetcher,
		Notifier: notifier,
		Logger:   discard,
		Metrics:  m,
		Sleep:    sleep,
	})

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 5, fetcher.calls)
	assert.Equal(t, []string{"Alice just went live!", "Alice just went live!"}, notifier.titles)
	assert.Len(t, *slept, 5)
	for _, d := range *slept {
		assert.Equal(t, 2*time.Minute, d)
	}

	state, ok := p.Tracker().State("alice")
	require.True(t, ok)
	assert.Equal(t, tracker.Live, state)

	expected := `
# HELP twnotify_notifications_total Total number of went-live notifications raised
# TYPE twnotify_notifications_total counter
twnotify_notifications_total 2
# HELP twnotify_polls_total Total number of completed poll cycles
# TYPE twnotify_polls_total counter
twnotify_polls_total 5
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"twnotify_polls_total", "twnotify_notifications_total"))
}

func TestPoller_StartupBias(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{cycles: []map[string]*twitch.Stream{
		{"alice": live("alice", "Alice", "Chess")},
	}}
	notifier := &recordingNotifier{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sleep, _ := cancelAfter(3, cancel)

	p := NewPoller(PollerConfig{
		Follows:  &fakeFollows{follows: follows("alice")},
		Fetcher:  fetcher,
		Notifier: notifier,
		Logger:   discard,
		Sleep:    sleep,
	})

	require.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Empty(t, notifier.titles)
}

func TestPoller_FollowOrderAndDedupe(t *testing.T) {
	t.Parallel()

	fetcher := &scriptedFetcher{cycles: []map[string]*twitch.Stream{{}}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sleep, _ := cancelAfter(1, cancel)

	p := NewPoller(PollerConfig{
		Follows:  &fakeFollows{follows: follows("zed", "alice", "zed", "mike")},
		Fetcher:  fetcher,
		Notifier: &recordingNotifier{},
		Logger:   discard,
		Sleep:    sleep,
	})

	_ = p.Run(ctx)
	require.Len(t, fetcher.names, 1)
	assert.Equal(t, []string{"zed", "alice", "mike"}, fetcher.names[0])
}

func TestPoller_Failures(t *testing.T) {
	t.Parallel()

	errFollows := errors.New("follows unavailable")
	errFetch := errors.New("streams unavailable")
	errNotify := errors.New("bus gone")

	tests := map[string]struct {
		follows  *fakeFollows
		fetcher  *scriptedFetcher
		notifier *recordingNotifier
		wantErr  error
	}{
		"follow load fails": {
			follows:  &fakeFollows{err: errFollows},
			fetcher:  &scriptedFetcher{},
			notifier: &recordingNotifier{},
			wantErr:  errFollows,
		},
		"fetch fails": {
			follows:  &fakeFollows{follows: follows("alice")},
			fetcher:  &scriptedFetcher{err: errFetch},
			notifier: &recordingNotifier{},
			wantErr:  errFetch,
		},
		"notify fails": {
			follows: &fakeFollows{follows: follows("alice")},
			fetcher: &scriptedFetcher{cycles: []map[string]*twitch.Stream{
				{},
				{"alice": live("alice", "Alice", "Chess")},
			}},
			notifier: &recordingNotifier{err: errNotify},
			wantErr:  errNotify,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := NewPoller(PollerConfig{
				Follows:  tt.follows,
				Fetcher:  tt.fetcher,
				Notifier: tt.notifier,
				Logger:   discard,
				Sleep:    func(context.Context, time.Duration) error { return nil },
			})

			err := p.Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPoller_Defaults(t *testing.T) {
	t.Parallel()

	p := NewPoller(PollerConfig{})
	assert.Equal(t, DefaultInterval, p.cfg.Interval)
	assert.NotNil(t, p.cfg.Logger)
	assert.NotNil(t, p.cfg.Sleep)
	assert.Nil(t, p.Tracker())
}

func TestSleep(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, Sleep(ctx, 0), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), 0))
}
