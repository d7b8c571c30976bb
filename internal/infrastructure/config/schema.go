package config

// Config represents the complete configuration for areashot.
type Config struct {
	// Capture controls tiling and where finished captures go.
	Capture CaptureConfig `mapstructure:"capture" yaml:"capture" toml:"capture" json:"capture"`
	// Selection tunes the drag gesture and edge auto-scroll.
	Selection SelectionConfig `mapstructure:"selection" yaml:"selection" toml:"selection" json:"selection"`
	// Browser selects how the page is driven.
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser" toml:"browser" json:"browser"`
	// Output holds encoder settings.
	Output        OutputConfig        `mapstructure:"output" yaml:"output" toml:"output" json:"output"`
	Clipboard     ClipboardConfig     `mapstructure:"clipboard" yaml:"clipboard" toml:"clipboard" json:"clipboard"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications" toml:"notifications" json:"notifications"`
	Database      DatabaseConfig      `mapstructure:"database" yaml:"database" toml:"database" json:"database"`
	History       HistoryConfig       `mapstructure:"history" yaml:"history" toml:"history" json:"history"`
	Logging       LoggingConfig       `mapstructure:"logging" yaml:"logging" toml:"logging" json:"logging"`
}

// OutputFormat names the file encoding.
type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatJPEG OutputFormat = "jpeg"
	FormatPDF  OutputFormat = "pdf"
)

// CaptureConfig controls the tiling compositor and capture destinations.
type CaptureConfig struct {
	// OverlapFraction is the share of the viewport consecutive tiles overlap by (0 < f < 1).
	OverlapFraction float64 `mapstructure:"overlap_fraction" yaml:"overlap_fraction" toml:"overlap_fraction" json:"overlap_fraction" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1"`
	// SettleDelayMs is the wait after each tile scroll.
	SettleDelayMs int `mapstructure:"settle_delay_ms" yaml:"settle_delay_ms" toml:"settle_delay_ms" json:"settle_delay_ms" jsonschema:"minimum=0"`
	// SingleSettleDelayMs is the wait when the region fits one viewport.
	SingleSettleDelayMs int          `mapstructure:"single_settle_delay_ms" yaml:"single_settle_delay_ms" toml:"single_settle_delay_ms" json:"single_settle_delay_ms" jsonschema:"minimum=0"`
	Format              OutputFormat `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=png,enum=jpeg,enum=pdf"`
	// Directory receives saved captures; empty disables saving.
	Directory       string `mapstructure:"directory" yaml:"directory" toml:"directory" json:"directory"`
	CopyToClipboard bool   `mapstructure:"copy_to_clipboard" yaml:"copy_to_clipboard" toml:"copy_to_clipboard" json:"copy_to_clipboard"`
}

// SelectionConfig tunes the selection gesture.
type SelectionConfig struct {
	// EdgeThreshold is the distance in CSS px from a viewport edge that triggers auto-scroll.
	EdgeThreshold float64 `mapstructure:"edge_threshold" yaml:"edge_threshold" toml:"edge_threshold" json:"edge_threshold" jsonschema:"minimum=1"`
	// ScrollSpeed is the auto-scroll distance per tick in CSS px.
	ScrollSpeed    float64 `mapstructure:"scroll_speed" yaml:"scroll_speed" toml:"scroll_speed" json:"scroll_speed" jsonschema:"minimum=1"`
	TickIntervalMs int     `mapstructure:"tick_interval_ms" yaml:"tick_interval_ms" toml:"tick_interval_ms" json:"tick_interval_ms" jsonschema:"minimum=1"`
	// MinSize discards selections narrower or shorter than this, in CSS px.
	MinSize float64 `mapstructure:"min_size" yaml:"min_size" toml:"min_size" json:"min_size" jsonschema:"minimum=1"`
	// Repeat keeps selecting after each capture until Escape.
	Repeat bool `mapstructure:"repeat" yaml:"repeat" toml:"repeat" json:"repeat"`
}

// BrowserConfig selects the browser driven over the DevTools protocol.
type BrowserConfig struct {
	// RemoteURL attaches to a running browser (ws://... or http://host:port); empty launches one.
	RemoteURL string `mapstructure:"remote_url" yaml:"remote_url" toml:"remote_url" json:"remote_url"`
	// ExecPath overrides the browser binary used when launching.
	ExecPath    string `mapstructure:"exec_path" yaml:"exec_path" toml:"exec_path" json:"exec_path"`
	UserDataDir string `mapstructure:"user_data_dir" yaml:"user_data_dir" toml:"user_data_dir" json:"user_data_dir"`
	Headless    bool   `mapstructure:"headless" yaml:"headless" toml:"headless" json:"headless"`
	WindowWidth int    `mapstructure:"window_width" yaml:"window_width" toml:"window_width" json:"window_width" jsonschema:"minimum=100"`
	// WindowHeight is the launched window height in CSS px.
	WindowHeight int `mapstructure:"window_height" yaml:"window_height" toml:"window_height" json:"window_height" jsonschema:"minimum=100"`
	// Shortcut starts a selection from inside the page, e.g. "Alt+Shift+S".
	Shortcut string `mapstructure:"shortcut" yaml:"shortcut" toml:"shortcut" json:"shortcut"`
	// NavigateTimeoutSec bounds page loads.
	NavigateTimeoutSec int `mapstructure:"navigate_timeout_sec" yaml:"navigate_timeout_sec" toml:"navigate_timeout_sec" json:"navigate_timeout_sec" jsonschema:"minimum=1"`
}

// OutputConfig holds encoder settings.
type OutputConfig struct {
	JPEGQuality int     `mapstructure:"jpeg_quality" yaml:"jpeg_quality" toml:"jpeg_quality" json:"jpeg_quality" jsonschema:"minimum=1,maximum=100"`
	PDFDPI      float64 `mapstructure:"pdf_dpi" yaml:"pdf_dpi" toml:"pdf_dpi" json:"pdf_dpi" jsonschema:"minimum=1"`
}

// ClipboardConfig orders the clipboard hand-off chain.
type ClipboardConfig struct {
	// PageFirst tries the page's async clipboard before system tools.
	PageFirst bool `mapstructure:"page_first" yaml:"page_first" toml:"page_first" json:"page_first"`
	System    bool `mapstructure:"system" yaml:"system" toml:"system" json:"system"`
}

// NotificationsConfig controls user feedback.
type NotificationsConfig struct {
	Desktop    bool `mapstructure:"desktop" yaml:"desktop" toml:"desktop" json:"desktop"`
	PageToast  bool `mapstructure:"page_toast" yaml:"page_toast" toml:"page_toast" json:"page_toast"`
	ErrorsOnly bool `mapstructure:"errors_only" yaml:"errors_only" toml:"errors_only" json:"errors_only"`
	// TimeoutMs is the desktop notification lifetime; -1 leaves it to the server.
	TimeoutMs int `mapstructure:"timeout_ms" yaml:"timeout_ms" toml:"timeout_ms" json:"timeout_ms" jsonschema:"minimum=-1"`
}

// DatabaseConfig locates the capture history database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" toml:"path" json:"path"`
}

// HistoryConfig holds capture history settings.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled" json:"enabled"`
	// RetentionDays prunes older records at startup; 0 keeps everything.
	RetentionDays int `mapstructure:"retention_days" yaml:"retention_days" toml:"retention_days" json:"retention_days" jsonschema:"minimum=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output configuration
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir" json:"log_dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAge        int    `mapstructure:"max_age" yaml:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" toml:"compress" json:"compress"`
}
