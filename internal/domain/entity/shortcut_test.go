package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShortcut(t *testing.T) {
	tests := []struct {
		in      string
		want    Shortcut
		wantErr bool
	}{
		{in: "Alt+Shift+S", want: Shortcut{Alt: true, Shift: true, Key: "S"}},
		{in: "ctrl+s", want: Shortcut{Ctrl: true, Key: "S"}},
		{in: "Super+F8", want: Shortcut{Meta: true, Key: "F8"}},
		{in: "S", wantErr: true},
		{in: "Hyper+S", wantErr: true},
		{in: "Ctrl+", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShortcut(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortcut_StringRoundTrip(t *testing.T) {
	sc, err := ParseShortcut("shift+ctrl+a")
	require.NoError(t, err)

	assert.Equal(t, "Ctrl+Shift+A", sc.String())
	again, err := ParseShortcut(sc.String())
	require.NoError(t, err)
	assert.Equal(t, sc, again)
}
