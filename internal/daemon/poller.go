// Package daemon runs the poll loop that watches followed channels and the
// supervisor that restarts it after failures.
package daemon

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ariel-frischer/twnotify/internal/metrics"
	"github.com/ariel-frischer/twnotify/internal/status"
	"github.com/ariel-frischer/twnotify/internal/tracker"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

// DefaultInterval is the pause between poll cycles.
const DefaultInterval = 120 * time.Second

// FollowLoader loads the channels a user follows.
type FollowLoader interface {
	Follows(ctx context.Context, username string) ([]twitch.Follow, error)
}

// LiveNotifier announces a channel that just went live.
type LiveNotifier interface {
	NotifyLive(ctx context.Context, s *twitch.Stream) error
}

// SleepFunc pauses for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// PollerConfig wires a Poller.
type PollerConfig struct {
	Username string
	Interval time.Duration
	Follows  FollowLoader
	Fetcher  status.Fetcher
	Notifier LiveNotifier
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Sleep    SleepFunc
}

// Poller is one poll loop: load follows, then fetch, observe, notify and
// sleep until the context ends or something fails.
type Poller struct {
	cfg     PollerConfig
	current atomic.Pointer[tracker.Tracker]
}

// NewPoller creates a poller, filling defaults for interval, logger and sleep.
func NewPoller(cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Sleep == nil {
		cfg.Sleep = Sleep
	}
	return &Poller{cfg: cfg}
}

// Tracker returns the tracker of the current incarnation, or nil before the
// first follow list has loaded.
func (p *Poller) Tracker() *tracker.Tracker {
	return p.current.Load()
}

// Run loads the follow list and polls until ctx is cancelled or a step
// fails. Every call starts from a fresh tracker.
func (p *Poller) Run(ctx context.Context) error {
	log := p.cfg.Logger.With("run_id", uuid.NewString())

	follows, err := p.cfg.Follows.Follows(ctx, p.cfg.Username)
	if err != nil {
		return p.stop(ctx, errors.WithMessagef(err, "loading follows of %s", p.cfg.Username))
	}

	tr := tracker.FromFollows(follows)
	names := followOrder(follows)
	p.current.Store(tr)
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.SetFollowed(tr.Len())
	}
	log.Info("tracking followed channels", "username", p.cfg.Username, "channels", len(names))

	for {
		if err := p.cycle(ctx, log, tr, names); err != nil {
			return p.stop(ctx, err)
		}
		if err := p.cfg.Sleep(ctx, p.cfg.Interval); err != nil {
			return err
		}
	}
}

func (p *Poller) cycle(ctx context.Context, log *slog.Logger, tr *tracker.Tracker, names []string) error {
	start := time.Now()
	live, err := p.cfg.Fetcher.Fetch(ctx, names)
	if err != nil {
		return errors.WithMessage(err, "fetching stream status")
	}
	if p.cfg.Metrics != nil {
		p.cfg.Metrics.ObservePollDuration(time.Since(start).Seconds())
	}

	for _, name := range names {
		stream := live[name]
		if tr.Observe(name, stream) != tracker.NotifyLive {
			continue
		}
		log.Info("channel went live", "channel", name, "game", stream.Game)
		if err := p.cfg.Notifier.NotifyLive(ctx, stream); err != nil {
			return err
		}
		if p.cfg.Metrics != nil {
			p.cfg.Metrics.IncNotifications()
		}
	}

	if p.cfg.Metrics != nil {
		p.cfg.Metrics.IncPolls()
		p.cfg.Metrics.SetLive(len(live))
	}
	log.Debug("poll complete", "live", len(live), "took", time.Since(start))
	return nil
}

// stop prefers the context error so cancellation is reported as such.
func (p *Poller) stop(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// followOrder returns channel names in follow order without duplicates.
func followOrder(follows []twitch.Follow) []string {
	seen := make(map[string]bool, len(follows))
	names := make([]string, 0, len(follows))
	for _, f := range follows {
		name := f.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Sleep waits for d unless ctx ends first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
