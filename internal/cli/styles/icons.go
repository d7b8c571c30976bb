// Package styles provides reusable lipgloss-based TUI components.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "\uf0ac" // browser/web
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconHeart     = "\uf004" // heart
	IconGo        = "\ue627" // go gopher
	IconArrow     = "\uf061" // arrow right

	// Status
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	// Captures
	IconCamera    = "\uf030" // camera
	IconCrop      = "\uf125" // crop
	IconClipboard = "\uf0ea" // clipboard
	IconImage     = "\uf1c5" // image file
	IconFolder    = "\uf07b" // folder
	IconTrash     = "\uf1f8" // trash
	IconDatabase  = "\uf1c0" // database
	IconConfig    = "\ue615" // config
	IconClock     = "\uf017" // clock

	// UI
	IconCursor = "\uf054" // chevron-right
)
