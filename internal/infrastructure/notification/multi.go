package notification

import (
	"context"
	"errors"

	"github.com/bnema/areashot/internal/application/port"
)

// Multi fans a notification out to every notifier. It fails only when all of them do.
type Multi []port.Notifier

var _ port.Notifier = Multi(nil)

// Notify implements port.Notifier.
func (m Multi) Notify(ctx context.Context, n port.Notification) error {
	var errs []error
	delivered := 0
	for _, target := range m {
		if target == nil {
			continue
		}
		if err := target.Notify(ctx, n); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
	}
	if delivered == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Quiet drops notifications below a minimum type, for the "errors only" setting.
type Quiet struct {
	Next       port.Notifier
	ErrorsOnly bool
}

// Notify implements port.Notifier.
func (q Quiet) Notify(ctx context.Context, n port.Notification) error {
	if q.ErrorsOnly && n.Type != port.NotificationError {
		return nil
	}
	return q.Next.Notify(ctx, n)
}
