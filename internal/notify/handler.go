package notify

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ariel-frischer/twnotify/internal/twitch"
)

const (
	// showTimeout bounds one call into the notification service
	showTimeout = 5 * time.Second
	// iconTimeout bounds one logo download
	iconTimeout = 10 * time.Second
)

// Options configures a Notifier.
type Options struct {
	// HTTPClient downloads channel logos (default: client with iconTimeout)
	HTTPClient *http.Client

	// TempDir is the parent of the icon directory (default: os.TempDir())
	TempDir string

	// Logger receives icon download failures (default: slog.Default())
	Logger *slog.Logger
}

// Notifier raises "just went live" notifications through a Sender.
// It owns the sender and a temporary directory for downloaded icons; both
// are released by Close.
type Notifier struct {
	sender Sender
	client *http.Client
	logger *slog.Logger

	parentDir string
	mu        sync.Mutex
	iconDir   string
}

// New creates a Notifier backed by the platform sender.
func New(opts Options) (*Notifier, error) {
	sender, err := NewSender()
	if err != nil {
		return nil, errors.Wrap(err, "initialising notification sender")
	}
	return NewWithSender(sender, opts), nil
}

// NewWithSender creates a Notifier with a custom sender (for testing).
func NewWithSender(sender Sender, opts Options) *Notifier {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: iconTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		sender:    sender,
		client:    client,
		logger:    logger,
		parentDir: opts.TempDir,
	}
}

// NotifyLive announces that the channel of s has just gone live.
// A lost connection to the notification service is recovered once by
// re-initialising the sender and retrying; any other failure is returned.
func (n *Notifier) NotifyLive(ctx context.Context, s *twitch.Stream) error {
	notification := LiveNotification(s)
	notification.Icon = n.icon(ctx, s.Channel.Logo)

	err := n.show(ctx, notification)
	if !errors.Is(err, ErrConnectionLost) {
		return errors.Wrapf(err, "notifying %s", s.Name())
	}

	n.logger.Warn("notification service connection lost, reinitialising", "channel", s.Name())
	if rerr := n.sender.Reinit(); rerr != nil {
		return errors.Wrap(rerr, "reinitialising notification sender")
	}
	return errors.Wrapf(n.show(ctx, notification), "notifying %s after reinit", s.Name())
}

func (n *Notifier) show(ctx context.Context, notification Notification) error {
	ctx, cancel := context.WithTimeout(ctx, showTimeout)
	defer cancel()
	return n.sender.Show(ctx, notification)
}

// icon downloads logo and returns the local path, or "" when there is no
// usable icon. Failures only cost the custom icon.
func (n *Notifier) icon(ctx context.Context, logo string) string {
	if logo == "" {
		return ""
	}
	dir, err := n.ensureIconDir()
	if err != nil {
		n.logger.Warn("icon directory unavailable", "error", err)
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, iconTimeout)
	defer cancel()
	path, err := fetchIcon(ctx, n.client, dir, logo)
	if err != nil {
		n.logger.Warn("icon download failed", "url", logo, "error", err, "partial", path != "")
	}
	return path
}

func (n *Notifier) ensureIconDir() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.iconDir != "" {
		return n.iconDir, nil
	}
	dir, err := os.MkdirTemp(n.parentDir, AppName+"-icons-")
	if err != nil {
		return "", err
	}
	n.iconDir = dir
	return dir, nil
}

// IconDir returns the icon directory, or "" if no icon was downloaded yet
func (n *Notifier) IconDir() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.iconDir
}

// Close removes downloaded icons and closes the sender.
func (n *Notifier) Close() error {
	n.mu.Lock()
	dir := n.iconDir
	n.iconDir = ""
	n.mu.Unlock()

	var rmErr error
	if dir != "" {
		rmErr = os.RemoveAll(dir)
	}
	if err := n.sender.Close(); err != nil {
		return err
	}
	return rmErr
}
