package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
	// explicitFile is set when the caller chose the file (--config).
	explicitFile string
}

// NewManagerWithFile creates a manager bound to path, or to the XDG config
// file when path is empty.
func NewManagerWithFile(path string) (*Manager, error) {
	v := viper.New()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
	}

	// AREASHOT_CAPTURE_FORMAT, AREASHOT_BROWSER_REMOTE_URL, ...
	v.SetEnvPrefix("AREASHOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "AREASHOT_LOG_LEVEL", "AREASHOT_LOGGING_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind AREASHOT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "AREASHOT_LOG_FORMAT", "AREASHOT_LOGGING_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind AREASHOT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:        v,
		callbacks:    make([]func(*Config), 0),
		explicitFile: path,
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created with defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.explicitFile == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configPath(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configPath(),
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

// decode unmarshals, fills dynamic paths, normalises and validates.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configPath(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) configPath() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	if m.explicitFile != "" {
		return m.explicitFile
	}
	path, _ := GetConfigFile()
	return path
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	switch strings.ToLower(string(config.Capture.Format)) {
	case "", "png":
		config.Capture.Format = FormatPNG
	case "jpg", "jpeg":
		config.Capture.Format = FormatJPEG
	case "pdf":
		config.Capture.Format = FormatPDF
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(config.Logging.Format) {
	case "", "text", "console":
		config.Logging.Format = "console"
	case "json":
		config.Logging.Format = "json"
	}

	config.Capture.Directory = strings.TrimSpace(config.Capture.Directory)
	config.Browser.RemoteURL = strings.TrimSpace(config.Browser.RemoteURL)
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Set changes one key (e.g. "capture.format") and persists the file.
func (m *Manager) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	previous := m.viper.Get(key)
	m.viper.Set(key, value)

	config, err := m.decode()
	if err != nil {
		m.viper.Set(key, previous)
		return err
	}

	if err := WriteConfigOrdered(config, m.configPath()); err != nil {
		return err
	}

	m.config = config
	if m.watching {
		m.skipNextReload = true
	}
	return nil
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// Validate before writing so callers get immediate errors.
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(cfg, m.configPath()); err != nil {
		return err
	}

	if m.watching {
		m.skipNextReload = true
		configCopy := *cfg
		m.config = &configCopy
		return nil
	}
	return m.reload()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.configPath()
}

// createDefaultConfig writes the defaults plus a JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	configFile := m.configPath()

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	m.viper.SetConfigFile(configFile)

	if err := GenerateSchemaFile(filepath.Dir(configFile)); err != nil {
		// The schema only feeds editor completion.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s (TOML format)\n", configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Note: Database.Path is set dynamically in Load(), no defaults needed

	m.setCaptureDefaults(defaults)
	m.setSelectionDefaults(defaults)
	m.setBrowserDefaults(defaults)
	m.setOutputDefaults(defaults)
	m.setClipboardDefaults(defaults)
	m.setNotificationDefaults(defaults)
	m.setHistoryDefaults(defaults)
	m.setLoggingDefaults(defaults)
}

func (m *Manager) setCaptureDefaults(defaults *Config) {
	m.viper.SetDefault("capture.overlap_fraction", defaults.Capture.OverlapFraction)
	m.viper.SetDefault("capture.settle_delay_ms", defaults.Capture.SettleDelayMs)
	m.viper.SetDefault("capture.single_settle_delay_ms", defaults.Capture.SingleSettleDelayMs)
	m.viper.SetDefault("capture.format", string(defaults.Capture.Format))
	m.viper.SetDefault("capture.directory", defaults.Capture.Directory)
	m.viper.SetDefault("capture.copy_to_clipboard", defaults.Capture.CopyToClipboard)
}

func (m *Manager) setSelectionDefaults(defaults *Config) {
	m.viper.SetDefault("selection.edge_threshold", defaults.Selection.EdgeThreshold)
	m.viper.SetDefault("selection.scroll_speed", defaults.Selection.ScrollSpeed)
	m.viper.SetDefault("selection.tick_interval_ms", defaults.Selection.TickIntervalMs)
	m.viper.SetDefault("selection.min_size", defaults.Selection.MinSize)
	m.viper.SetDefault("selection.repeat", defaults.Selection.Repeat)
}

func (m *Manager) setBrowserDefaults(defaults *Config) {
	m.viper.SetDefault("browser.remote_url", defaults.Browser.RemoteURL)
	m.viper.SetDefault("browser.exec_path", defaults.Browser.ExecPath)
	m.viper.SetDefault("browser.user_data_dir", defaults.Browser.UserDataDir)
	m.viper.SetDefault("browser.headless", defaults.Browser.Headless)
	m.viper.SetDefault("browser.window_width", defaults.Browser.WindowWidth)
	m.viper.SetDefault("browser.window_height", defaults.Browser.WindowHeight)
	m.viper.SetDefault("browser.shortcut", defaults.Browser.Shortcut)
	m.viper.SetDefault("browser.navigate_timeout_sec", defaults.Browser.NavigateTimeoutSec)
}

func (m *Manager) setOutputDefaults(defaults *Config) {
	m.viper.SetDefault("output.jpeg_quality", defaults.Output.JPEGQuality)
	m.viper.SetDefault("output.pdf_dpi", defaults.Output.PDFDPI)
}

func (m *Manager) setClipboardDefaults(defaults *Config) {
	m.viper.SetDefault("clipboard.page_first", defaults.Clipboard.PageFirst)
	m.viper.SetDefault("clipboard.system", defaults.Clipboard.System)
}

func (m *Manager) setNotificationDefaults(defaults *Config) {
	m.viper.SetDefault("notifications.desktop", defaults.Notifications.Desktop)
	m.viper.SetDefault("notifications.page_toast", defaults.Notifications.PageToast)
	m.viper.SetDefault("notifications.errors_only", defaults.Notifications.ErrorsOnly)
	m.viper.SetDefault("notifications.timeout_ms", defaults.Notifications.TimeoutMs)
}

func (m *Manager) setHistoryDefaults(defaults *Config) {
	m.viper.SetDefault("history.enabled", defaults.History.Enabled)
	m.viper.SetDefault("history.retention_days", defaults.History.RetentionDays)
	m.viper.SetDefault("database.path", defaults.Database.Path)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Keys lists every settable key in sorted order.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := m.viper.AllKeys()
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of one key.
func (m *Manager) Value(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.Get(key)
}

func isKnownKey(key string) bool {
	defaults := &Manager{viper: viper.New()}
	defaults.setDefaults()
	return defaults.viper.IsSet(key)
}
