package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/areashot/internal/application/usecase"
	"github.com/bnema/areashot/internal/cli/model"
	"github.com/bnema/areashot/internal/infrastructure/config"
	"github.com/bnema/areashot/internal/logging"
)

const selectWaiting = "Drag a region in the browser window (Esc to finish)"

var (
	selectRepeat bool
	selectWatch  bool
	selectOutput outputFlags
)

var selectCmd = &cobra.Command{
	Use:   "select <url>",
	Short: "Drag-select a region of a page and capture it",
	Long: `Open a page in a visible browser window and drag a rectangle over it.

Dragging near a window edge scrolls the page, so the selection can be far
larger than the window. Releasing the mouse captures the region. Escape
cancels. With --repeat, a new selection starts after every capture until
Escape is pressed. The browser.shortcut key combination starts a new
selection from inside the page.

Examples:
  areashot select https://example.com
  areashot select https://example.com --repeat --format jpeg
  areashot select https://example.com --no-save          # clipboard only`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().BoolVar(&selectRepeat, "repeat", false, "keep selecting until Escape (default selection.repeat)")
	selectCmd.Flags().BoolVar(&selectWatch, "watch-config", true, "apply config file changes while running")
	selectOutput.register(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	cfg := app.Manager.Get()
	out, err := selectOutput.resolve(cfg)
	if err != nil {
		return err
	}
	repeat := cfg.Selection.Repeat
	if cmd.Flags().Changed("repeat") {
		repeat = selectRepeat
	}
	if cfg.Browser.Headless && cfg.Browser.RemoteURL == "" {
		return fmt.Errorf("select needs a visible browser: set browser.headless = false or browser.remote_url")
	}

	pageURL, err := resolvePageURL(args[0])
	if err != nil {
		return err
	}
	plain := selectOutput.plain || selectOutput.json || !interactive()
	captures, err := runWithProgress(app.Ctx(), app.Theme, "Opening "+pageURL+"...", plain,
		func(ctx context.Context, r model.Reporter) error {
			log := logging.FromContext(ctx)

			sess, err := app.OpenSession(ctx, pageURL)
			if err != nil {
				return err
			}
			defer sess.Close()

			if selectWatch {
				app.Manager.OnConfigChange(func(c *config.Config) {
					sess.Apply(c)
					log.Info().Msg("configuration reloaded")
				})
				if err := app.Manager.Watch(); err != nil {
					log.Warn().Err(err).Msg("config watch unavailable")
				}
			}

			r.StatusText(selectWaiting)
			_, err = sess.Select.Run(ctx, usecase.SelectInput{
				Repeat:    repeat,
				Format:    out.format,
				Directory: out.dir,
				Clipboard: out.clipboard,
				Progress:  r.Progress,
				OnCapture: func(o *usecase.CaptureOutput) {
					r.Captured(o.Record)
					r.StatusText(selectWaiting)
				},
			})
			return err
		})
	if err != nil {
		return err
	}
	return printCaptures(app.Theme, captures, selectOutput.json)
}
