package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/areashot/internal/application/usecase"
	"github.com/bnema/areashot/internal/cli"
	"github.com/bnema/areashot/internal/cli/model"
	"github.com/bnema/areashot/internal/domain/entity"
	"github.com/bnema/areashot/internal/infrastructure/config"
)

// outputFlags are shared by capture and select.
type outputFlags struct {
	format      string
	dir         string
	noSave      bool
	noClipboard bool
	json        bool
	plain       bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: png, jpeg, pdf (default capture.format)")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "save directory (default capture.directory)")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "do not write a file")
	cmd.Flags().BoolVar(&f.noClipboard, "no-clipboard", false, "do not copy to the clipboard")
	cmd.Flags().BoolVar(&f.json, "json", false, "print captures as JSON")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "plain status lines instead of the progress view")
}

// resolved is the effective output of one run.
type resolved struct {
	format    entity.OutputFormat
	dir       string
	clipboard bool
}

func (f *outputFlags) resolve(cfg *config.Config) (resolved, error) {
	r := resolved{
		format:    cli.OutputFormat(cfg),
		dir:       cfg.Capture.Directory,
		clipboard: cfg.Capture.CopyToClipboard && !f.noClipboard,
	}
	if f.format != "" {
		format, err := entity.ParseOutputFormat(f.format)
		if err != nil {
			return r, err
		}
		r.format = format
	}
	if f.dir != "" {
		r.dir = f.dir
	}
	if f.noSave {
		r.dir = ""
	}
	if r.dir == "" && !r.clipboard {
		return r, errors.New("nothing to do: saving and clipboard are both disabled")
	}
	return r, nil
}

var (
	captureRect   string
	captureFull   bool
	captureOutput outputFlags
)

var captureCmd = &cobra.Command{
	Use:   "capture <url>",
	Short: "Capture a region of a page without interaction",
	Long: `Open a page and capture a fixed rectangle in document coordinates (CSS px).

The rectangle may be far larger than the browser window; it is captured in
tiles and stitched. Use --full to capture the whole document.

Examples:
  areashot capture https://example.com --rect 0,0,1280,4000
  areashot capture https://example.com --full --format pdf
  areashot capture https://example.com --rect 100,200,600,400 --no-save --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)
	captureCmd.Flags().StringVarP(&captureRect, "rect", "r", "", "left,top,width,height in CSS px")
	captureCmd.Flags().BoolVar(&captureFull, "full", false, "capture the whole document")
	captureOutput.register(captureCmd)
	captureCmd.MarkFlagsMutuallyExclusive("rect", "full")
	captureCmd.MarkFlagsOneRequired("rect", "full")
}

func runCapture(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	out, err := captureOutput.resolve(app.Manager.Get())
	if err != nil {
		return err
	}

	var rect entity.DocumentRect
	if !captureFull {
		if rect, err = parseRect(captureRect); err != nil {
			return err
		}
	}

	pageURL, err := resolvePageURL(args[0])
	if err != nil {
		return err
	}
	plain := captureOutput.plain || captureOutput.json || !interactive()
	captures, err := runWithProgress(app.Ctx(), app.Theme, "Opening "+pageURL+"...", plain,
		func(ctx context.Context, r model.Reporter) error {
			sess, err := app.OpenSession(ctx, pageURL)
			if err != nil {
				return err
			}
			defer sess.Close()

			if captureFull {
				if rect, err = sess.FullPage(ctx); err != nil {
					return err
				}
			}

			r.Status("Capturing %.0fx%.0f at %.0f,%.0f", rect.Width, rect.Height, rect.Left, rect.Top)
			result, err := sess.Capture.Execute(ctx, usecase.CaptureInput{
				PageURL:   pageURL,
				Rect:      rect,
				Format:    out.format,
				Directory: out.dir,
				Clipboard: out.clipboard,
				Progress:  r.Progress,
			})
			if err != nil {
				return err
			}
			r.Captured(result.Record)
			return nil
		})
	if err != nil {
		return err
	}
	return printCaptures(app.Theme, captures, captureOutput.json)
}

// parseRect reads "left,top,width,height".
func parseRect(s string) (entity.DocumentRect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return entity.DocumentRect{}, fmt.Errorf("invalid --rect %q: want left,top,width,height", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return entity.DocumentRect{}, fmt.Errorf("invalid --rect %q: %w", s, err)
		}
		v[i] = f
	}
	rect := entity.DocumentRect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}
	if rect.IsEmpty() || rect.Left < 0 || rect.Top < 0 {
		return entity.DocumentRect{}, fmt.Errorf("invalid --rect %q: need non-negative origin and positive size", s)
	}
	return rect, nil
}
