package notify

import (
	"fmt"

	"github.com/ariel-frischer/twnotify/internal/build"
	"github.com/ariel-frischer/twnotify/internal/twitch"
)

const (
	// CategoryOnline is the freedesktop notification category for presence events
	CategoryOnline = "presence.online"

	titleFormat = "%s just went live!"
	bodyFormat  = "%s is playing %s:\n%s\n%s"
)

// AppName is reported to the notification server as the sending application
var AppName = build.AppName

// Notification represents a single notification event to dispatch
type Notification struct {
	// Title is the notification summary line
	Title string

	// Message is the notification body text
	Message string

	// Icon is a local file path, empty for the server's default icon
	Icon string

	// Category is the freedesktop category hint
	Category string
}

// LiveNotification builds the notification for a channel that just went live.
// The icon is left empty; the Notifier fills it after downloading the logo.
func LiveNotification(s *twitch.Stream) Notification {
	name := s.DisplayName()
	return Notification{
		Title:    fmt.Sprintf(titleFormat, name),
		Message:  fmt.Sprintf(bodyFormat, name, s.Game, s.Channel.Status, s.Channel.URL),
		Category: CategoryOnline,
	}
}
