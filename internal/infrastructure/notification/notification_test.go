package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/areashot/internal/application/port"
	"github.com/bnema/areashot/internal/application/port/mocks"
)

type fakeBus struct {
	calls  [][]interface{}
	nextID uint32
	err    error
}

func (f *fakeBus) Call(method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, append([]interface{}{method}, args...))
	if f.err != nil {
		return &dbus.Call{Err: f.err}
	}
	f.nextID++
	return &dbus.Call{Body: []interface{}{f.nextID}}
}

func TestDesktopNotifier_ReplacesPreviousNotification(t *testing.T) {
	ctx := context.Background()
	bus := &fakeBus{}
	n := &DesktopNotifier{obj: bus, timeoutMs: 3000}

	require.NoError(t, n.Notify(ctx, port.Notification{Title: "areashot", Message: "Capturing screenshot...", Type: port.NotificationInfo}))
	require.NoError(t, n.Notify(ctx, port.Notification{Title: "areashot", Message: "done", Type: port.NotificationError}))

	require.Len(t, bus.calls, 2)
	assert.Equal(t, notifyInterface+".Notify", bus.calls[0][0])
	assert.Equal(t, uint32(0), bus.calls[0][2], "first notification replaces nothing")
	assert.Equal(t, uint32(1), bus.calls[1][2])
	assert.Equal(t, "done", bus.calls[1][5])

	hints := bus.calls[1][7].(map[string]dbus.Variant)
	assert.Equal(t, urgencyCritical, hints["urgency"].Value())
	assert.Equal(t, int32(3000), bus.calls[1][8])
}

func TestDesktopNotifier_Errors(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, (&DesktopNotifier{}).Notify(ctx, port.Notification{}))

	n := &DesktopNotifier{obj: &fakeBus{err: errors.New("no daemon")}}
	assert.ErrorContains(t, n.Notify(ctx, port.Notification{}), "no daemon")
}

func TestMulti_DeliversToAll(t *testing.T) {
	ctx := context.Background()
	note := port.Notification{Title: "t", Message: "m"}
	failing := mocks.NewMockNotifier(t)
	ok := mocks.NewMockNotifier(t)
	failing.EXPECT().Notify(mock.Anything, note).Return(errors.New("down")).Once()
	ok.EXPECT().Notify(mock.Anything, note).Return(nil).Once()

	assert.NoError(t, Multi{failing, nil, ok}.Notify(ctx, note))
}

func TestMulti_AllFail(t *testing.T) {
	ctx := context.Background()
	failing := mocks.NewMockNotifier(t)
	failing.EXPECT().Notify(mock.Anything, mock.Anything).Return(errors.New("down")).Once()

	assert.ErrorContains(t, Multi{failing}.Notify(ctx, port.Notification{}), "down")
}

func TestQuiet_ErrorsOnly(t *testing.T) {
	ctx := context.Background()
	next := mocks.NewMockNotifier(t)
	next.EXPECT().Notify(mock.Anything, mock.MatchedBy(func(n port.Notification) bool {
		return n.Type == port.NotificationError
	})).Return(nil).Once()

	q := Quiet{Next: next, ErrorsOnly: true}

	require.NoError(t, q.Notify(ctx, port.Notification{Type: port.NotificationInfo}))
	require.NoError(t, q.Notify(ctx, port.Notification{Type: port.NotificationError}))
}
