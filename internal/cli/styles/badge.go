package styles

import (
	"fmt"
	"time"

	"github.com/bnema/areashot/internal/domain/entity"
)

// StatusBadge renders a capture status badge.
func (t *Theme) StatusBadge(status entity.CaptureStatus) string {
	if status == entity.CaptureSucceeded {
		return t.Badge.Background(t.Success).Render("ok")
	}
	return t.Badge.Background(t.Error).Render("failed")
}

// FormatBadge renders an output format badge.
func (t *Theme) FormatBadge(format entity.OutputFormat) string {
	return t.BadgeMuted.Render(string(format))
}

// TimeBadge renders a relative time badge.
func (t *Theme) TimeBadge(tm time.Time) string {
	return t.BadgeMuted.Render(RelativeTime(tm))
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTime(tm, time.Now())
}

func relativeTime(tm, now time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/(24*7)))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
