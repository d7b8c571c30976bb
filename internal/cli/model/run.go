// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/areashot/internal/cli/styles"
	"github.com/bnema/areashot/internal/domain/entity"
)

const maxProgressWidth = 60

// StatusMsg replaces the status line.
type StatusMsg string

// ProgressMsg reports tile progress of the running capture.
type ProgressMsg struct {
	Done  int
	Total int
}

// CapturedMsg reports a finished capture.
type CapturedMsg struct {
	Record *entity.CaptureRecord
}

// FinishedMsg ends the run.
type FinishedMsg struct {
	Err error
}

// Reporter forwards worker events to a running program.
type Reporter struct {
	Send func(tea.Msg)
}

// Status sets the status line.
func (r Reporter) Status(format string, args ...any) {
	r.Send(StatusMsg(fmt.Sprintf(format, args...)))
}

// StatusText sets the status line to msg verbatim.
func (r Reporter) StatusText(msg string) {
	r.Send(StatusMsg(msg))
}

// Progress matches usecase.ProgressFunc.
func (r Reporter) Progress(done, total int) {
	r.Send(ProgressMsg{Done: done, Total: total})
}

// Captured reports a finished capture.
func (r Reporter) Captured(record *entity.CaptureRecord) {
	r.Send(CapturedMsg{Record: record})
}

// Finished ends the run.
func (r Reporter) Finished(err error) {
	r.Send(FinishedMsg{Err: err})
}

// RunModel shows a browser-driven run: a spinner with a status line, a tile
// progress bar while a capture is compositing and the captures so far.
type RunModel struct {
	loading  styles.LoadingModel
	progress progress.Model
	theme    *styles.Theme
	cancel   context.CancelFunc

	done        int
	total       int
	captures    []*entity.CaptureRecord
	err         error
	finished    bool
	interrupted bool
}

// NewRunModel creates a run view. cancel is called on Ctrl+C.
func NewRunModel(theme *styles.Theme, status string, cancel context.CancelFunc) RunModel {
	return RunModel{
		loading:  styles.NewLoading(theme, status),
		progress: styles.NewStyledProgress(theme, maxProgressWidth),
		theme:    theme,
		cancel:   cancel,
	}
}

// Init implements tea.Model.
func (m RunModel) Init() tea.Cmd {
	return m.loading.Spinner.Tick
}

// Update implements tea.Model.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type != tea.KeyCtrlC {
			return m, nil
		}
		if m.interrupted {
			// Second Ctrl+C: stop waiting for the worker.
			return m, tea.Quit
		}
		m.interrupted = true
		m.loading.Message = "Cancelling..."
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(maxProgressWidth, max(10, msg.Width-4))
		return m, nil

	case StatusMsg:
		m.loading.Message = string(msg)
		m.done, m.total = 0, 0
		return m, nil

	case ProgressMsg:
		m.done, m.total = msg.Done, msg.Total
		if msg.Total <= 0 {
			return m, nil
		}
		return m, m.progress.SetPercent(float64(msg.Done) / float64(msg.Total))

	case CapturedMsg:
		m.captures = append(m.captures, msg.Record)
		m.done, m.total = 0, 0
		return m, m.progress.SetPercent(0)

	case FinishedMsg:
		m.err = msg.Err
		m.finished = true
		return m, tea.Quit

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		if p, ok := pm.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m RunModel) View() string {
	var lines []string
	for _, r := range m.captures {
		lines = append(lines, renderCapture(m.theme, r))
	}

	if m.finished {
		if m.err != nil {
			lines = append(lines, fmt.Sprintf("%s %v", m.theme.ErrorStyle.Render(styles.IconX), m.err))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
	}

	lines = append(lines, m.loading.View())
	if m.total > 1 {
		lines = append(lines, "  "+m.progress.View()+m.theme.Subtle.Render(fmt.Sprintf("  tile %d/%d", m.done, m.total)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func renderCapture(theme *styles.Theme, r *entity.CaptureRecord) string {
	where := "clipboard"
	switch {
	case r.FilePath != "" && r.Clipboard:
		where = r.FilePath + " + clipboard"
	case r.FilePath != "":
		where = r.FilePath
	}
	return fmt.Sprintf("%s %s %s %s",
		theme.SuccessStyle.Render(styles.IconCheck),
		theme.Highlight.Render(fmt.Sprintf("%dx%d", r.OutputWidth, r.OutputHeight)),
		theme.Subtle.Render(fmt.Sprintf("(%d tiles)", r.Tiles)),
		where,
	)
}

// Captures returns the captures reported so far.
func (m RunModel) Captures() []*entity.CaptureRecord {
	return m.captures
}

// Err returns the error the run finished with.
func (m RunModel) Err() error {
	return m.err
}

// Interrupted reports whether the user pressed Ctrl+C.
func (m RunModel) Interrupted() bool {
	return m.interrupted
}
