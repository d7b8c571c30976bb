package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/bnema/areashot/internal/cli/model"
	"github.com/bnema/areashot/internal/cli/styles"
	"github.com/bnema/areashot/internal/domain/entity"
	pageurl "github.com/bnema/areashot/internal/domain/url"
	"github.com/bnema/areashot/internal/domain/validation"
)

// runWork is one browser-driven job reporting through r.
type runWork func(ctx context.Context, r model.Reporter) error

// interactive reports whether stderr is a terminal the progress view can draw on.
func interactive() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runWithProgress runs work behind the progress view, or with plain status
// lines on stderr when plain is set. It returns the captures work reported.
func runWithProgress(ctx context.Context, theme *styles.Theme, status string, plain bool, work runWork) ([]*entity.CaptureRecord, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if plain {
		return runPlain(ctx, theme, os.Stderr, status, work)
	}

	p := tea.NewProgram(model.NewRunModel(theme, status, cancel), tea.WithOutput(os.Stderr))
	go func() {
		err := work(ctx, model.Reporter{Send: p.Send})
		p.Send(model.FinishedMsg{Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	m, ok := final.(model.RunModel)
	if !ok {
		return nil, errors.New("unexpected progress model")
	}
	if m.Interrupted() && m.Err() == nil {
		return m.Captures(), context.Canceled
	}
	return m.Captures(), m.Err()
}

func runPlain(ctx context.Context, theme *styles.Theme, w io.Writer, status string, work runWork) ([]*entity.CaptureRecord, error) {
	var captures []*entity.CaptureRecord
	fmt.Fprintln(w, theme.Subtle.Render(status))

	err := work(ctx, model.Reporter{Send: func(msg tea.Msg) {
		switch msg := msg.(type) {
		case model.StatusMsg:
			fmt.Fprintln(w, theme.Subtle.Render(string(msg)))
		case model.CapturedMsg:
			captures = append(captures, msg.Record)
		}
	}})
	return captures, err
}

// printCaptures writes one line per capture to stdout, or a JSON array.
func printCaptures(theme *styles.Theme, captures []*entity.CaptureRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(toJSON(captures))
	}
	for _, r := range captures {
		target := r.FilePath
		if target == "" {
			target = theme.Subtle.Render("(clipboard only)")
		}
		fmt.Println(target)
	}
	return nil
}

// rectJSON is a document rectangle in CSS pixels.
type rectJSON struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// captureJSON is the --json form of a capture record.
type captureJSON struct {
	ID         string   `json:"id"`
	PageURL    string   `json:"page_url"`
	Rect       rectJSON `json:"rect"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Tiles      int      `json:"tiles"`
	Format     string   `json:"format"`
	File       string   `json:"file,omitempty"`
	Clipboard  bool     `json:"clipboard"`
	Status     string   `json:"status"`
	Error      string   `json:"error,omitempty"`
	DurationMs int64    `json:"duration_ms"`
	CreatedAt  string   `json:"created_at"`
}

func toJSON(records []*entity.CaptureRecord) []captureJSON {
	out := make([]captureJSON, 0, len(records))
	for _, r := range records {
		out = append(out, captureJSON{
			ID:         r.ID,
			PageURL:    r.PageURL,
			Rect:       rectJSON{Left: r.Rect.Left, Top: r.Rect.Top, Width: r.Rect.Width, Height: r.Rect.Height},
			Width:      r.OutputWidth,
			Height:     r.OutputHeight,
			Tiles:      r.Tiles,
			Format:     string(r.Format),
			File:       r.FilePath,
			Clipboard:  r.Clipboard,
			Status:     string(r.Status),
			Error:      r.Error,
			DurationMs: r.Duration.Milliseconds(),
			CreatedAt:  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// resolvePageURL normalizes a command-line page argument and rejects
// addresses the browser cannot open.
func resolvePageURL(arg string) (string, error) {
	pageURL := pageurl.Normalize(arg)
	if errs := validation.ValidatePageURL(pageURL); len(errs) > 0 {
		return "", fmt.Errorf("invalid page %q: %s", arg, strings.Join(errs, "; "))
	}
	return pageURL, nil
}
