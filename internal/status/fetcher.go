// Package status refreshes the stream status of a set of channels, either one
// request per channel or in batches of up to twitch.MaxBatch channels.
package status

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/twnotify/internal/twitch"
)

// Strategy selects how statuses are fetched.
type Strategy string

const (
	// StrategyPerChannel issues one request per channel.
	StrategyPerChannel Strategy = "per-channel"
	// StrategyBatched issues one request per chunk of up to twitch.MaxBatch channels.
	StrategyBatched Strategy = "batched"
)

// ValidStrategy checks if the given string names a known strategy
func ValidStrategy(s string) bool {
	switch Strategy(s) {
	case StrategyPerChannel, StrategyBatched:
		return true
	default:
		return false
	}
}

// API is the subset of the twitch client the fetchers need.
type API interface {
	Stream(ctx context.Context, channel string) (*twitch.Stream, error)
	Streams(ctx context.Context, channels []string) ([]twitch.Stream, error)
}

// Fetcher returns the live streams among names, keyed by channel name.
// Channels that are offline are absent from the map.
type Fetcher interface {
	Fetch(ctx context.Context, names []string) (map[string]*twitch.Stream, error)
}

// New returns the Fetcher for strategy.
func New(strategy Strategy, api API) (Fetcher, error) {
	switch strategy {
	case StrategyPerChannel:
		return &perChannel{api: api}, nil
	case StrategyBatched, "":
		return &batched{api: api, size: twitch.MaxBatch}, nil
	default:
		return nil, fmt.Errorf("unknown status strategy %q", strategy)
	}
}

type perChannel struct {
	api API
}

func (f *perChannel) Fetch(ctx context.Context, names []string) (map[string]*twitch.Stream, error) {
	live := make(map[string]*twitch.Stream)
	for _, name := range names {
		stream, err := f.api.Stream(ctx, name)
		if err != nil {
			return nil, err
		}
		if stream != nil {
			live[name] = stream
		}
	}
	return live, nil
}

type batched struct {
	api  API
	size int
}

func (f *batched) Fetch(ctx context.Context, names []string) (map[string]*twitch.Stream, error) {
	live := make(map[string]*twitch.Stream)
	for _, chunk := range Chunk(names, f.size) {
		streams, err := f.api.Streams(ctx, chunk)
		if err != nil {
			return nil, err
		}
		for i := range streams {
			live[streams[i].Name()] = &streams[i]
		}
	}
	return live, nil
}

// Chunk splits names into consecutive slices of at most size elements.
func Chunk(names []string, size int) [][]string {
	if size <= 0 {
		size = twitch.MaxBatch
	}
	chunks := make([][]string, 0, (len(names)+size-1)/size)
	for start := 0; start < len(names); start += size {
		end := start + size
		if end > len(names) {
			end = len(names)
		}
		chunks = append(chunks, names[start:end])
	}
	return chunks
}
