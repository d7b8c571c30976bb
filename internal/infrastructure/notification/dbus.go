// Package notification delivers user feedback through desktop notifications.
package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/logging"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"

	// Urgency hint values defined by freedesktop notifications.
	urgencyLow      byte = 0
	urgencyNormal   byte = 1
	urgencyCritical byte = 2

	appName = "areashot"
)

// caller is the subset of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

var _ port.Notifier = (*DesktopNotifier)(nil)

// DesktopNotifier sends notifications over the D-Bus session bus.
// Consecutive notifications replace each other so progress updates do not pile up.
type DesktopNotifier struct {
	obj       caller
	timeoutMs int32
	icon      string

	mu     sync.Mutex
	lastID uint32
}

// NewDesktopNotifier connects to the session bus.
// Returns a functional notifier even if D-Bus is unavailable (graceful degradation).
func NewDesktopNotifier(ctx context.Context, timeoutMs int32) *DesktopNotifier {
	log := logging.FromContext(ctx)

	n := &DesktopNotifier{timeoutMs: timeoutMs, icon: "camera-photo"}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("notifications: cannot connect to D-Bus session bus")
		return n
	}
	n.obj = conn.Object(notifyDest, notifyPath)
	return n
}

// Supported reports whether a session bus was reached.
func (n *DesktopNotifier) Supported() bool {
	return n.obj != nil
}

// Notify implements port.Notifier.
func (n *DesktopNotifier) Notify(ctx context.Context, note port.Notification) error {
	if n.obj == nil {
		return fmt.Errorf("notifications: no session bus")
	}

	n.mu.Lock()
	replaces := n.lastID
	n.mu.Unlock()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyFor(note.Type)),
	}

	// Notify(app_name s, replaces_id u, app_icon s, summary s, body s,
	//        actions as, hints a{sv}, expire_timeout i) -> id u
	var id uint32
	err := n.obj.Call(notifyInterface+".Notify", 0,
		appName,
		replaces,
		n.icon,
		note.Title,
		note.Message,
		[]string{},
		hints,
		n.timeoutMs,
	).Store(&id)
	if err != nil {
		return fmt.Errorf("notifications: notify: %w", err)
	}

	n.mu.Lock()
	n.lastID = id
	n.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Uint32("id", id).
		Str("type", note.Type.String()).
		Msg("desktop notification sent")
	return nil
}

func urgencyFor(t port.NotificationType) byte {
	switch t {
	case port.NotificationError:
		return urgencyCritical
	case port.NotificationInfo:
		return urgencyLow
	default:
		return urgencyNormal
	}
}
