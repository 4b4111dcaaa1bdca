//go:build !linux

package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// beeepSender implements Sender using the cross-platform beeep library.
type beeepSender struct{}

// newPlatformSender creates a beeep-based sender.
func newPlatformSender() (Sender, error) {
	return &beeepSender{}, nil
}

// Show sends a notification using beeep.
func (s *beeepSender) Show(_ context.Context, n Notification) error {
	return beeep.Notify(n.Title, n.Message, n.Icon)
}

// Reinit is a no-op; beeep keeps no connection.
func (s *beeepSender) Reinit() error { return nil }

// Available returns true since beeep handles platform detection internally.
func (s *beeepSender) Available() bool { return true }

// Close is a no-op for beeep.
func (s *beeepSender) Close() error { return nil }
