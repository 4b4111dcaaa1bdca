//go:build linux

package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall = busName + ".Notify"

	// expireDefault lets the server pick the timeout
	expireDefault = int32(-1)
)

// errors that mean the session bus or the notification daemon went away
var lostConnectionErrors = map[string]bool{
	"org.freedesktop.DBus.Error.ServiceUnknown": true,
	"org.freedesktop.DBus.Error.NoReply":        true,
	"org.freedesktop.DBus.Error.Disconnected":   true,
}

// dbusSender implements Sender over the D-Bus session bus
type dbusSender struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

// newPlatformSender connects to the session bus
func newPlatformSender() (Sender, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &dbusSender{conn: conn}, nil
}

// Show calls org.freedesktop.Notifications.Notify
func (s *dbusSender) Show(ctx context.Context, n Notification) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrConnectionLost
	}

	hints := map[string]dbus.Variant{}
	if n.Category != "" {
		hints["category"] = dbus.MakeVariant(n.Category)
	}

	obj := conn.Object(busName, objectPath)
	call := obj.CallWithContext(ctx, notifyCall, 0,
		AppName, uint32(0), n.Icon, n.Title, n.Message, []string{}, hints, expireDefault)
	return classifyDBusError(call.Err)
}

// Reinit closes the current connection and dials the session bus again
func (s *dbusSender) Reinit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *dbusSender) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil && s.conn.Connected()
}

func (s *dbusSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// classifyDBusError maps bus-level failures to ErrConnectionLost and passes
// everything else through.
func classifyDBusError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dbus.ErrClosed) {
		return ErrConnectionLost
	}

	var name string
	var valErr dbus.Error
	var ptrErr *dbus.Error
	switch {
	case errors.As(err, &valErr):
		name = valErr.Name
	case errors.As(err, &ptrErr):
		name = ptrErr.Name
	}
	if lostConnectionErrors[name] {
		return ErrConnectionLost
	}
	return err
}
