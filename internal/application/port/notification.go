package port

import "context"

// NotificationType indicates the visual style of a notification.
type NotificationType int

const (
	// NotificationInfo is for informational messages.
	NotificationInfo NotificationType = iota
	// NotificationSuccess is for success confirmations.
	NotificationSuccess
	// NotificationError is for error messages.
	NotificationError
	// NotificationWarning is for warning messages.
	NotificationWarning
)

// String returns a human-readable representation of the notification type.
func (t NotificationType) String() string {
	switch t {
	case NotificationInfo:
		return "info"
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	default:
		return "info"
	}
}

// Notification is one user feedback message.
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
}

// Notifier represents the port interface for user feedback.
// Callers treat delivery as fire-and-forget and never fail on the returned error.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
