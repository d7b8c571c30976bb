package entity

import (
	"fmt"
	"strings"
)

// Shortcut is a key chord that starts a selection from inside the page.
// Key holds the KeyboardEvent.key value, e.g. "S" or "F8".
type Shortcut struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   string
}

// ParseShortcut parses chords such as "Alt+Shift+S" or "ctrl+F8".
func ParseShortcut(s string) (Shortcut, error) {
	var sc Shortcut
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) < 2 {
		return sc, fmt.Errorf("shortcut %q needs at least one modifier", s)
	}

	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl", "control":
			sc.Ctrl = true
		case "alt", "option":
			sc.Alt = true
		case "shift":
			sc.Shift = true
		case "meta", "super", "cmd":
			sc.Meta = true
		default:
			return sc, fmt.Errorf("unknown modifier %q in shortcut %q", part, s)
		}
	}

	key := strings.TrimSpace(parts[len(parts)-1])
	if key == "" {
		return sc, fmt.Errorf("shortcut %q has no key", s)
	}
	if len(key) == 1 {
		key = strings.ToUpper(key)
	}
	sc.Key = key
	return sc, nil
}

// String renders the chord in canonical order.
func (s Shortcut) String() string {
	var parts []string
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Meta {
		parts = append(parts, "Meta")
	}
	return strings.Join(append(parts, s.Key), "+")
}
