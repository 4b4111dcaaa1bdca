// Package notify raises desktop notifications when a followed channel goes live.
//
// A Notifier owns one Sender handle. On Linux the Sender talks to
// org.freedesktop.Notifications over the D-Bus session bus; elsewhere it uses
// beeep. When the bus connection drops, the Notifier re-initialises the
// Sender once and retries the notification once.
//
// # Icons
//
// Channel logos are downloaded into a temporary directory owned by the
// Notifier. The notification server reads the icon path asynchronously, so
// files are kept until Close removes the directory.
//
// # Usage
//
//	n, err := notify.New(notify.Options{})
//	if err != nil {
//		return err
//	}
//	defer n.Close()
//	err = n.NotifyLive(ctx, stream)
package notify
