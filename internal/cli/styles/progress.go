package styles

import (
	"github.com/charmbracelet/bubbles/progress"
)

// NewStyledProgress creates a themed tile progress bar.
func NewStyledProgress(theme *Theme, width int) progress.Model {
	p := progress.New(
		progress.WithGradient(string(theme.Muted), string(theme.Accent)),
		progress.WithWidth(width),
	)
	p.PercentageStyle = theme.Subtle
	return p
}
