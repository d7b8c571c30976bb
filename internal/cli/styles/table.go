package styles

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/areashot/internal/domain/entity"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	// Apply theme styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// CaptureTableColumns returns columns for the capture history table.
func CaptureTableColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 9},
		{Title: "Page", Width: 34},
		{Title: "Size", Width: 11},
		{Title: "Tiles", Width: 5},
		{Title: "Fmt", Width: 4},
		{Title: "File", Width: 24},
		{Title: "Status", Width: 9},
	}
}

// CaptureRow converts a history record to a table row.
func CaptureRow(r *entity.CaptureRecord) table.Row {
	file := "-"
	if r.FilePath != "" {
		file = filepath.Base(r.FilePath)
	}
	size := "-"
	if r.OutputWidth > 0 && r.OutputHeight > 0 {
		size = fmt.Sprintf("%dx%d", r.OutputWidth, r.OutputHeight)
	}
	return table.Row{
		RelativeTime(r.CreatedAt),
		r.PageURL,
		size,
		formatInt(r.Tiles),
		string(r.Format),
		file,
		string(r.Status),
	}
}

// formatInt formats an integer for display.
func formatInt(n int) string {
	switch {
	case n >= 1000000:
		return formatFloat(float64(n)/1000000) + "M"
	case n >= 1000:
		return formatFloat(float64(n)/1000) + "K"
	default:
		return fmt.Sprint(n)
	}
}

// formatFloat formats a float with one decimal.
func formatFloat(f float64) string {
	i := int(f * 10)
	if i%10 == 0 {
		return fmt.Sprint(i / 10)
	}
	return fmt.Sprintf("%d.%d", i/10, i%10)
}
