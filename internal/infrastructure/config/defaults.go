package config

import "path/filepath"

// Default configuration constants
const (
	// Capture defaults
	defaultOverlapFraction     = 0.2
	defaultSettleDelayMs       = 250
	defaultSingleSettleDelayMs = 200

	// Selection defaults
	defaultEdgeThreshold  = 60.0
	defaultScrollSpeed    = 18.0
	defaultTickIntervalMs = 16 // ~60 Hz
	defaultMinSize        = 10.0

	// Browser defaults
	defaultWindowWidth        = 1280
	defaultWindowHeight       = 800
	defaultShortcut           = "Alt+Shift+S"
	defaultNavigateTimeoutSec = 30

	// Output defaults
	defaultJPEGQuality = 90
	defaultPDFDPI      = 96.0

	// Notification defaults
	defaultNotificationTimeoutMs = 3000

	// History defaults
	defaultRetentionDays = 90

	// Logging defaults
	defaultMaxLogAgeDays = 7
	defaultMaxLogSizeMB  = 10
	defaultMaxBackups    = 3
)

// getDefaultLogDir returns the default log directory, falls back to empty string on error
func getDefaultLogDir() string {
	logDir, err := GetLogDir()
	if err != nil {
		return ""
	}
	return logDir
}

// getDefaultCaptureDir returns the default picture directory, falls back to empty string on error
func getDefaultCaptureDir() string {
	dir, err := GetPicturesDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName)
}

// DefaultConfig returns the default configuration values for areashot.
func DefaultConfig() *Config {
	return &Config{
		Capture: CaptureConfig{
			OverlapFraction:     defaultOverlapFraction,
			SettleDelayMs:       defaultSettleDelayMs,
			SingleSettleDelayMs: defaultSingleSettleDelayMs,
			Format:              FormatPNG,
			Directory:           getDefaultCaptureDir(),
			CopyToClipboard:     true,
		},
		Selection: SelectionConfig{
			EdgeThreshold:  defaultEdgeThreshold,
			ScrollSpeed:    defaultScrollSpeed,
			TickIntervalMs: defaultTickIntervalMs,
			MinSize:        defaultMinSize,
		},
		Browser: BrowserConfig{
			WindowWidth:        defaultWindowWidth,
			WindowHeight:       defaultWindowHeight,
			Shortcut:           defaultShortcut,
			NavigateTimeoutSec: defaultNavigateTimeoutSec,
		},
		Output: OutputConfig{
			JPEGQuality: defaultJPEGQuality,
			PDFDPI:      defaultPDFDPI,
		},
		Clipboard: ClipboardConfig{
			PageFirst: true,
			System:    true,
		},
		Notifications: NotificationsConfig{
			Desktop:   true,
			PageToast: true,
			TimeoutMs: defaultNotificationTimeoutMs,
		},
		Database: DatabaseConfig{
			// Path is set dynamically in Load()
		},
		History: HistoryConfig{
			Enabled:       true,
			RetentionDays: defaultRetentionDays,
		},
		Logging: LoggingConfig{
			Level:         "info",
			Format:        "console",
			LogDir:        getDefaultLogDir(),
			EnableFileLog: false,
			MaxSizeMB:     defaultMaxLogSizeMB,
			MaxBackups:    defaultMaxBackups,
			MaxAge:        defaultMaxLogAgeDays,
		},
	}
}
