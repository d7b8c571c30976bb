// Package cmd provides Cobra CLI commands for areashot.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/areashot/internal/cli"
	"github.com/bnema/areashot/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootOpts  cli.Options
	rootCmd   = &cobra.Command{
		Use:   "areashot",
		Short: "Region screenshots of web pages, any size",
		Long: `areashot drives a Chromium tab over the DevTools protocol and captures
any rectangle of the page, including regions far larger than the window.

Large regions are captured by scrolling the page tile by tile and stitching
the frames into one image. Video and canvas content is painted in from the
elements themselves so it is never blank.

Use 'areashot select <url>' to drag a region with the mouse, or
'areashot capture <url> --rect x,y,w,h' to capture without interaction.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "__complete":
				return nil
			}

			var err error
			app, err = cli.NewApp(cmd.Context(), rootOpts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.ConfigFile, "config", "", "config file (default $XDG_CONFIG_HOME/areashot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.LogLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		// PersistentPostRun is skipped when RunE fails.
		if app != nil {
			_ = app.Close()
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
	rootCmd.Version = info.Short()
}
