package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/areashot/internal/cli/styles"
	"github.com/bnema/areashot/internal/infrastructure/config"
	"github.com/bnema/areashot/internal/logging"
)

var (
	logsFollow   bool
	logsLines    int
	logsClearAll bool
)

const (
	defaultLogsLines = 50
	defaultLogMaxAge = 7
	followInterval   = 100 * time.Millisecond
)

var logsCmd = &cobra.Command{
	Use:   "logs [session]",
	Short: "View application logs",
	Long: `View the areashot log file (logging.enable_file_log must be on).

Every run tags its lines with a session id. Pass the short id (last 4 hex
characters) to only show one run.

Examples:
  areashot logs               # Last 50 lines
  areashot logs a7b3          # Lines from the run ending in 'a7b3'
  areashot logs -f            # Follow in real-time
  areashot logs -n 200        # Last 200 lines`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
}

func runLogs(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	session := ""
	if len(args) == 1 {
		session = strings.ToLower(strings.TrimSpace(args[0]))
	}

	path := filepath.Join(getLogDir(app.Config), logging.DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Println(app.Theme.Subtle.Render("No log file at " + path + ". Set logging.enable_file_log = true."))
			return nil
		}
		return fmt.Errorf("stat log file: %w", err)
	}

	if logsFollow {
		return tailLog(app.Ctx(), path, session, app.Theme)
	}

	lines, err := lastLines(path, logsLines, session)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(colorizeLogLine(line, app.Theme))
	}
	return nil
}

// getLogDir returns logging.log_dir, or the XDG default when unset.
func getLogDir(cfg *config.Config) string {
	if cfg != nil && cfg.Logging.LogDir != "" {
		return cfg.Logging.LogDir
	}
	logDir, err := config.GetLogDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "state", "areashot", "logs")
	}
	return logDir
}

// lastLines returns the last n lines of path that belong to session
// (empty matches everything).
func lastLines(path string, n int, session string) (lines []string, retErr error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !matchesSession(line, session) {
			continue
		}
		lines = append(lines, line)
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return lines, nil
}

// tailLog follows the log file until ctx is cancelled.
func tailLog(ctx context.Context, path, session string, theme *styles.Theme) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, _ = file.Seek(0, io.SeekEnd)

	fmt.Println(theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Println()

	reader := bufio.NewReader(file)
	pending := ""
	for {
		chunk, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("read log file: %w", err)
			}
			// No full line yet; keep partial data.
			pending += chunk
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(followInterval):
			}
			continue
		}

		line := strings.TrimRight(pending+chunk, "\n")
		pending = ""
		if matchesSession(line, session) {
			fmt.Println(colorizeLogLine(line, theme))
		}
	}
}

// logEntry represents a parsed JSON log entry.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
	Session   string `json:"session_id"`
	Error     string `json:"error"`
}

func matchesSession(line, session string) bool {
	if session == "" {
		return true
	}
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return false
	}
	return strings.EqualFold(logging.ShortSessionID(entry.Session), session) ||
		strings.EqualFold(entry.Session, session)
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil && entry.Level != "" {
		return formatJSONLogLine(entry, theme)
	}

	switch {
	case containsAny(line, "ERR", "ERROR"):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, "WRN", "WARN"):
		return theme.WarningStyle.Render(line)
	case containsAny(line, "DBG", "DEBUG"):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

// formatJSONLogLine formats a parsed JSON log entry with colors.
func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		timeStr = t.Format("15:04:05")
	}

	var levelStr string
	switch entry.Level {
	case "error", "fatal", "panic":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	var sb strings.Builder
	sb.WriteString(theme.Subtle.Render(timeStr))
	sb.WriteString(" ")
	sb.WriteString(levelStr)
	if entry.Session != "" {
		sb.WriteString(" ")
		sb.WriteString(theme.Subtle.Render(logging.ShortSessionID(entry.Session)))
	}
	if entry.Component != "" {
		sb.WriteString(" ")
		sb.WriteString(theme.Highlight.Render(entry.Component))
	}
	sb.WriteString(" ")
	sb.WriteString(entry.Message)
	if entry.Error != "" {
		sb.WriteString(" ")
		sb.WriteString(theme.ErrorStyle.Render(entry.Error))
	}
	return sb.String()
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove rotated log files",
	Long: `Remove rotated log files older than logging.max_age days (default 7).
Use --all to also truncate the current log file.`,
	Args: cobra.NoArgs,
	RunE: runLogsClear,
}

func init() {
	logsCmd.AddCommand(logsClearCmd)
	logsClearCmd.Flags().BoolVar(&logsClearAll, "all", false, "remove every log file")
}

func runLogsClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	maxAge := defaultLogMaxAge
	if app.Config != nil && app.Config.Logging.MaxAge > 0 {
		maxAge = app.Config.Logging.MaxAge
	}

	logDir := getLogDir(app.Config)
	removed, err := clearLogs(logDir, time.Now().AddDate(0, 0, -maxAge), logsClearAll)
	if err != nil {
		return err
	}

	if len(removed) == 0 {
		fmt.Println(app.Theme.Subtle.Render(fmt.Sprintf("No log files older than %d days", maxAge)))
		return nil
	}
	for _, name := range removed {
		fmt.Printf("%s %s\n", app.Theme.SuccessStyle.Render(styles.IconCheck), name)
	}
	fmt.Printf("\n%s\n", app.Theme.SuccessStyle.Render(fmt.Sprintf("Cleared %d file(s)", len(removed))))
	return nil
}

// clearLogs removes rotated backups modified before cutoff. With all set it
// removes every backup and truncates the current file.
func clearLogs(dir string, cutoff time.Time, all bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logging.DefaultFileName) {
			continue
		}
		path := filepath.Join(dir, name)

		if name == logging.DefaultFileName {
			if all {
				if err := os.Truncate(path, 0); err != nil {
					return removed, fmt.Errorf("truncate %s: %w", name, err)
				}
				removed = append(removed, name)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !all && !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}
