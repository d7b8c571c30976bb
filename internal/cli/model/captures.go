package model

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/areashot/internal/application/usecase"
	"github.com/bnema/areashot/internal/cli/styles"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/logging"
)

const (
	historyPageSize = 500
	// chrome is the lines taken by header, help and padding.
	chrome = 8
)

// capturesUseCase is the subset of ListCapturesUseCase the browser needs.
type capturesUseCase interface {
	Execute(ctx context.Context, limit, offset int) (*usecase.ListCapturesOutput, error)
	Purge(ctx context.Context, olderThanDays int) (int64, error)
}

// CapturesModel is the Bubble Tea model for the capture history browser.
type CapturesModel struct {
	// UI components
	table   table.Model
	help    help.Model
	keys    styles.CapturesKeyMap
	confirm *styles.ConfirmModel

	// State
	captures []*entity.CaptureRecord
	stats    *entity.CaptureHistoryStats
	showHelp bool
	loaded   bool
	notice   string
	width    int
	height   int
	err      error

	// Dependencies
	ctx   context.Context
	uc    capturesUseCase
	theme *styles.Theme
	open  func(path string) error
}

// NewCapturesModel creates a new history browser model.
func NewCapturesModel(ctx context.Context, theme *styles.Theme, uc capturesUseCase) CapturesModel {
	return CapturesModel{
		table:  styles.NewStyledTable(theme, styles.CaptureTableColumns(), nil, 100, 20),
		help:   styles.NewStyledHelp(theme),
		keys:   styles.DefaultCapturesKeyMap(),
		ctx:    ctx,
		uc:     uc,
		theme:  theme,
		open:   xdgOpen,
		width:  100,
		height: 24,
	}
}

func xdgOpen(path string) error {
	return exec.Command("xdg-open", path).Start()
}

// capturesLoadedMsg is sent when a history page is loaded.
type capturesLoadedMsg struct {
	out *usecase.ListCapturesOutput
	err error
}

// capturesPurgedMsg is sent after the history was cleared.
type capturesPurgedMsg struct {
	err error
}

// Init implements tea.Model.
func (m CapturesModel) Init() tea.Cmd {
	return m.load
}

func (m CapturesModel) load() tea.Msg {
	out, err := m.uc.Execute(m.ctx, historyPageSize, 0)
	if err != nil {
		logging.FromContext(m.ctx).Error().Err(err).Msg("failed to load capture history")
	}
	return capturesLoadedMsg{out: out, err: err}
}

func (m CapturesModel) purge() tea.Msg {
	_, err := m.uc.Purge(m.ctx, 0)
	return capturesPurgedMsg{err: err}
}

// Update implements tea.Model.
func (m CapturesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(3, msg.Height-chrome))
		return m, nil

	case capturesLoadedMsg:
		m.loaded = true
		m.err = msg.err
		if msg.err == nil {
			m.captures = msg.out.Captures
			m.stats = msg.out.Stats
			m.table.SetRows(captureRows(m.captures))
		}
		return m, nil

	case capturesPurgedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.notice = "History cleared"
		return m, m.load

	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m CapturesModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, _ := m.confirm.Update(msg)
	if !c.Done() {
		m.confirm = &c
		return m, nil
	}
	m.confirm = nil
	if c.Result() {
		return m, m.purge
	}
	return m, nil
}

func (m CapturesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.load
	case key.Matches(msg, m.keys.Purge):
		if len(m.captures) > 0 {
			c := styles.NewConfirm(m.theme, fmt.Sprintf("Delete all %d captures from history?", len(m.captures)))
			m.confirm = &c
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.openSelected(false)
		return m, nil
	case key.Matches(msg, m.keys.Reveal):
		m.openSelected(true)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// openSelected opens the selected image, or its folder when dir is set.
func (m *CapturesModel) openSelected(dir bool) {
	r := m.Selected()
	if r == nil || r.FilePath == "" {
		m.notice = "Nothing saved for this capture"
		return
	}
	target := r.FilePath
	if dir {
		target = filepath.Dir(target)
	}
	if err := m.open(target); err != nil {
		m.notice = "Cannot open " + target + ": " + err.Error()
		return
	}
	m.notice = "Opened " + target
}

// Selected returns the highlighted record, or nil.
func (m CapturesModel) Selected() *entity.CaptureRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.captures) {
		return nil
	}
	return m.captures[i]
}

// View implements tea.Model.
func (m CapturesModel) View() string {
	t := m.theme

	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	header := t.Title.Render(styles.IconCamera + " Capture history")
	if m.stats != nil {
		header += "  " + t.Subtle.Render(fmt.Sprintf("%d total • %d ok • %d failed", m.stats.Total, m.stats.Succeeded, m.stats.Failed))
	}

	var body string
	switch {
	case m.err != nil:
		body = t.ErrorStyle.Render(styles.IconX + " " + m.err.Error())
	case !m.loaded:
		body = t.Subtle.Render("Loading...")
	case len(m.captures) == 0:
		body = t.Subtle.Render("No captures yet. Run 'areashot select <url>' to take one.")
	default:
		body = m.table.View()
		if r := m.Selected(); r != nil {
			body += "\n" + recordDetail(t, r)
		}
	}

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	}
	if m.notice != "" {
		footer = t.Highlight.Render(m.notice) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

// recordDetail summarises the highlighted record under the table.
func recordDetail(t *styles.Theme, r *entity.CaptureRecord) string {
	parts := []string{t.StatusBadge(r.Status), t.FormatBadge(r.Format), t.TimeBadge(r.CreatedAt)}
	if r.Error != "" {
		parts = append(parts, t.ErrorStyle.Render(r.Error))
	} else if r.FilePath != "" {
		parts = append(parts, t.Subtle.Render(r.FilePath))
	}
	return strings.Join(parts, " ")
}

func captureRows(records []*entity.CaptureRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, styles.CaptureRow(r))
	}
	return rows
}
