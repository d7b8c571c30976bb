package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/areashot/internal/cli/model"
	"github.com/bnema/areashot/internal/cli/styles"
)

var (
	historyJSON  bool
	historyLimit int
	purgeDays    int
	purgeAll     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past captures",
	Long: `Browse the capture history in an interactive table.

Press enter to open an image, o to open its folder, P to clear the history.
Use --json for machine-readable output.`,
	RunE: runHistory,
}

var historyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete old history records",
	Long: `Delete history records older than --days (default history.retention_days).
Saved image files are kept.

Examples:
  areashot history purge --days 30
  areashot history purge --all`,
	RunE: runHistoryPurge,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print history as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "records to print with --json")

	historyCmd.AddCommand(historyPurgeCmd)
	historyPurgeCmd.Flags().IntVar(&purgeDays, "days", 0, "remove records older than this many days")
	historyPurgeCmd.Flags().BoolVar(&purgeAll, "all", false, "remove every record")
	historyPurgeCmd.MarkFlagsMutuallyExclusive("days", "all")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	uc, err := app.RequireHistory()
	if err != nil {
		return err
	}

	if historyJSON {
		out, err := uc.Execute(app.Ctx(), historyLimit, 0)
		if err != nil {
			return err
		}
		return printCaptures(app.Theme, out.Captures, true)
	}

	m := model.NewCapturesModel(app.Ctx(), app.Theme, uc)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runHistoryPurge(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	uc, err := app.RequireHistory()
	if err != nil {
		return err
	}

	days := app.Config.History.RetentionDays
	switch {
	case purgeAll:
		days = 0
	case cmd.Flags().Changed("days"):
		if purgeDays <= 0 {
			return errors.New("--days must be positive (use --all to clear everything)")
		}
		days = purgeDays
	case days == 0:
		return errors.New("history.retention_days is 0: pass --days or --all")
	}

	removed, err := uc.Purge(app.Ctx(), days)
	if err != nil {
		return err
	}

	theme := app.Theme
	if removed < 0 {
		fmt.Printf("%s %s\n", theme.SuccessStyle.Render(styles.IconCheck), "History cleared")
		return nil
	}
	fmt.Printf("%s Removed %s records older than %d days\n",
		theme.SuccessStyle.Render(styles.IconTrash),
		theme.Highlight.Render(fmt.Sprint(removed)),
		days,
	)
	return nil
}
