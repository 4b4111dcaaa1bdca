package twitch

// Channel is the channel object embedded in follow and stream payloads.
type Channel struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Logo        string `json:"logo"`
	URL         string `json:"url"`
	Status      string `json:"status"`
}

// Follow is one channel the watched user follows.
type Follow struct {
	Channel Channel `json:"channel"`
}

// Name returns the channel name, which is the unique key for a follow.
func (f Follow) Name() string {
	return f.Channel.Name
}

// Stream is the live stream record of a channel. A nil *Stream means offline.
type Stream struct {
	Game    string  `json:"game"`
	Viewers int     `json:"viewers"`
	Channel Channel `json:"channel"`
}

// Name returns the channel name the stream belongs to.
func (s *Stream) Name() string {
	return s.Channel.Name
}

// DisplayName falls back to the channel name when no display name is set.
func (s *Stream) DisplayName() string {
	if s.Channel.DisplayName != "" {
		return s.Channel.DisplayName
	}
	return s.Channel.Name
}

// followsPage is one page of GET /users/{username}/follows/channels
type followsPage struct {
	Follows []Follow `json:"follows"`
	Total   int      `json:"_total"`
}

// streamResponse is the body of GET /streams/{channel}
type streamResponse struct {
	Stream *Stream `json:"stream"`
}

// streamsResponse is the body of GET /streams/?channel=a,b,c
type streamsResponse struct {
	Streams []Stream `json:"streams"`
}
