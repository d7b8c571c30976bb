package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigEntry is one effective setting.
type ConfigEntry struct {
	Key   string
	Value any
}

// ConfigRenderer renders config command output with styled text.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config file location.
func (r *ConfigRenderer) RenderConfigInfo(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path))
}

// RenderEntries renders settings grouped by section, in the given order.
func (r *ConfigRenderer) RenderEntries(entries []ConfigEntry) string {
	var sb strings.Builder
	section := ""
	for _, e := range entries {
		head, name, found := strings.Cut(e.Key, ".")
		if !found {
			head, name = "", e.Key
		}
		if head != section {
			section = head
			fmt.Fprintf(&sb, "\n  %s\n", r.theme.Subtitle.Render("["+section+"]"))
		}
		fmt.Fprintf(&sb, "    %s = %s\n", r.theme.Highlight.Render(name), r.theme.Normal.Render(formatValue(e.Value)))
	}
	return sb.String()
}

// RenderSet renders the result of changing one setting.
func (r *ConfigRenderer) RenderSet(key string, value any) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("  %s %s = %s\n", iconStyle.Render(IconCheck), r.theme.Highlight.Render(key), formatValue(value))
}

// RenderOpening renders the message shown before launching an editor.
func (r *ConfigRenderer) RenderOpening(path, editor string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("  %s Opening %s with %s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		r.theme.Highlight.Render(editor),
	)
}

// RenderSchemaWritten renders the path of a generated schema file.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("  %s Schema written to %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case nil:
		return "(unset)"
	default:
		return fmt.Sprint(val)
	}
}
