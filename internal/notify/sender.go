package notify

import (
	"context"
	"errors"
)

// ErrConnectionLost reports that the notification backend went away and the
// sender needs Reinit before it can deliver again.
var ErrConnectionLost = errors.New("notification service connection lost")

// Sender defines the interface for platform-specific notification senders
type Sender interface {
	// Show delivers a notification to the desktop notification service
	Show(ctx context.Context, n Notification) error

	// Reinit tears down and re-establishes the backend connection
	Reinit() error

	// Available returns true if the backend was initialised successfully
	Available() bool

	// Close releases the backend connection
	Close() error
}

// NewSender creates the sender for the current platform.
func NewSender() (Sender, error) {
	return newPlatformSender()
}
