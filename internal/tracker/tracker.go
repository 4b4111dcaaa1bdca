// Package tracker holds the per-channel liveness state and decides when a
// channel has just gone live.
//
// Liveness is kept in its own map keyed by channel name, separate from the
// follow metadata. Every tracked channel starts as Live, so a channel that is
// already streaming when the tracker is created is taken as the baseline and
// does not produce a notification on the first poll cycle.
package tracker

import (
	"fmt"
	"sync"

	"github.com/ariel-frischer/twnotify/internal/twitch"
)

// State is the tracker's belief about a channel as of the last observation.
type State int

const (
	// Live means the channel was streaming at the last observation (or has not
	// been observed yet).
	Live State = iota
	// Offline means the channel was not streaming at the last observation.
	Offline
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name as written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "live":
		*s = Live
	case "offline":
		*s = Offline
	default:
		return fmt.Errorf("unknown state %q", text)
	}
	return nil
}

// Decision is the outcome of one observation.
type Decision int

const (
	// NoAction means nothing should be raised for this observation.
	NoAction Decision = iota
	// NotifyLive means the channel went from offline to live.
	NotifyLive
)

func (d Decision) String() string {
	if d == NotifyLive {
		return "notify-live"
	}
	return "no-action"
}

// Tracker maps channel names to their liveness state.
// The mutex only matters for Snapshot readers on other goroutines; the poll
// loop itself is sequential.
type Tracker struct {
	mu     sync.RWMutex
	states map[string]State
}

// New creates a tracker for the given channel names, all seeded as Live.
// Duplicate names collapse into one entry.
func New(names ...string) *Tracker {
	states := make(map[string]State, len(names))
	for _, name := range names {
		states[name] = Live
	}
	return &Tracker{states: states}
}

// FromFollows creates a tracker for every channel in follows.
func FromFollows(follows []twitch.Follow) *Tracker {
	names := make([]string, 0, len(follows))
	for _, f := range follows {
		names = append(names, f.Name())
	}
	return New(names...)
}

// Observe records the current stream of channel name and returns what to do.
// A nil stream means the channel is offline. Channels that are not tracked
// are ignored.
func (t *Tracker) Observe(name string, stream *twitch.Stream) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, ok := t.states[name]
	if !ok {
		return NoAction
	}

	if stream == nil {
		t.states[name] = Offline
		return NoAction
	}

	t.states[name] = Live
	if prev == Offline {
		return NotifyLive
	}
	return NoAction
}

// State returns the state of name and whether it is tracked.
func (t *Tracker) State(name string) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.states[name]
	return s, ok
}

// Len returns the number of tracked channels.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.states)
}

// Snapshot returns a copy of all states.
func (t *Tracker) Snapshot() map[string]State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]State, len(t.states))
	for name, s := range t.states {
		out[name] = s
	}
	return out
}

// Count returns how many tracked channels are in state s.
func (t *Tracker) Count(s State) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, st := range t.states {
		if st == s {
			n++
		}
	}
	return n
}
