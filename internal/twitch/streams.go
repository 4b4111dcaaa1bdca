package twitch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Stream returns the live stream of channel, or nil if it is offline.
func (c *Client) Stream(ctx context.Context, channel string) (*Stream, error) {
	var resp streamResponse
	if err := c.getJSON(ctx, "/streams/"+url.PathEscape(channel), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Stream, nil
}

// Streams returns the live streams among channels. Offline channels are simply
// absent from the result. At most MaxBatch channels may be requested at once.
func (c *Client) Streams(ctx context.Context, channels []string) ([]Stream, error) {
	if len(channels) > MaxBatch {
		return nil, fmt.Errorf("at most %d channels per request, got %d", MaxBatch, len(channels))
	}
	if len(channels) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("channel", strings.Join(channels, ","))
	query.Set("limit", strconv.Itoa(MaxBatch))

	var resp streamsResponse
	if err := c.getJSON(ctx, "/streams/", query, &resp); err != nil {
		return nil, err
	}
	return resp.Streams, nil
}
