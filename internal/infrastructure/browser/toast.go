package browser

import (
	"context"
	"fmt"

	"github.com/bnema/areashot/internal/application/port"
)

var _ port.Notifier = (*Toast)(nil)

// Toast shows notifications inside the page.
type Toast struct {
	tab       *Tab
	timeoutMs int
}

// NewToast creates an in-page notifier. Informational toasts stay until
// replaced; the rest disappear after timeoutMs.
func NewToast(tab *Tab, timeoutMs int) *Toast {
	return &Toast{tab: tab, timeoutMs: timeoutMs}
}

// Notify implements port.Notifier.
func (t *Toast) Notify(ctx context.Context, n port.Notification) error {
	timeout := t.timeoutMs
	if n.Type == port.NotificationInfo {
		timeout = 0
	}

	var ok bool
	if err := t.tab.eval(ctx, call("toast", n.Type.String(), n.Message, timeout), &ok); err != nil {
		return fmt.Errorf("page toast: %w", err)
	}
	return nil
}
