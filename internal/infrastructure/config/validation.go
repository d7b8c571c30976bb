package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	domainvalidation "github.com/bnema/areashot/internal/domain/validation"
)

// validateConfig collects every invalid value into one error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateCapture(config)...)
	validationErrors = append(validationErrors, validateSelection(config)...)
	validationErrors = append(validationErrors, validateBrowser(config)...)
	validationErrors = append(validationErrors, validateOutput(config)...)
	validationErrors = append(validationErrors, validateNotifications(config)...)
	validationErrors = append(validationErrors, validateHistory(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateCapture(config *Config) []string {
	var validationErrors []string
	c := config.Capture
	if c.OverlapFraction <= 0 || c.OverlapFraction >= 1 {
		validationErrors = append(validationErrors, "capture.overlap_fraction must be between 0 and 1 (exclusive)")
	}
	if c.SettleDelayMs < 0 {
		validationErrors = append(validationErrors, "capture.settle_delay_ms must be non-negative")
	}
	if c.SingleSettleDelayMs < 0 {
		validationErrors = append(validationErrors, "capture.single_settle_delay_ms must be non-negative")
	}
	switch c.Format {
	case FormatPNG, FormatJPEG, FormatPDF:
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("capture.format must be one of png, jpeg, pdf (got %q)", c.Format))
	}
	return validationErrors
}

func validateSelection(config *Config) []string {
	var validationErrors []string
	s := config.Selection
	if s.EdgeThreshold < 1 {
		validationErrors = append(validationErrors, "selection.edge_threshold must be at least 1")
	}
	if s.ScrollSpeed < 1 {
		validationErrors = append(validationErrors, "selection.scroll_speed must be at least 1")
	}
	if s.TickIntervalMs < 1 {
		validationErrors = append(validationErrors, "selection.tick_interval_ms must be at least 1")
	}
	if s.MinSize < 1 {
		validationErrors = append(validationErrors, "selection.min_size must be at least 1")
	}
	return validationErrors
}

func validateBrowser(config *Config) []string {
	var validationErrors []string
	b := config.Browser
	validationErrors = append(validationErrors, domainvalidation.ValidateDevToolsURL("browser.remote_url", b.RemoteURL)...)
	if b.WindowWidth < 100 || b.WindowHeight < 100 {
		validationErrors = append(validationErrors, "browser.window_width and browser.window_height must be at least 100")
	}
	if b.NavigateTimeoutSec < 1 {
		validationErrors = append(validationErrors, "browser.navigate_timeout_sec must be at least 1")
	}
	validationErrors = append(validationErrors, domainvalidation.ValidateShortcut("browser.shortcut", b.Shortcut)...)
	return validationErrors
}

func validateOutput(config *Config) []string {
	var validationErrors []string
	if config.Output.JPEGQuality < 1 || config.Output.JPEGQuality > 100 {
		validationErrors = append(validationErrors, "output.jpeg_quality must be between 1 and 100")
	}
	if config.Output.PDFDPI <= 0 {
		validationErrors = append(validationErrors, "output.pdf_dpi must be positive")
	}
	return validationErrors
}

func validateNotifications(config *Config) []string {
	if config.Notifications.TimeoutMs < -1 {
		return []string{"notifications.timeout_ms must be -1 or greater"}
	}
	return nil
}

func validateHistory(config *Config) []string {
	if config.History.RetentionDays < 0 {
		return []string{"history.retention_days must be non-negative"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	l := config.Logging
	if _, err := zerolog.ParseLevel(l.Level); err != nil || l.Level == "" {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", l.Level))
	}
	if l.Format != "console" && l.Format != "json" {
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be console or json (got %q)", l.Format))
	}
	if l.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if l.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if l.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if l.EnableFileLog && l.LogDir == "" {
		validationErrors = append(validationErrors, "logging.log_dir is required when enable_file_log is true")
	}
	return validationErrors
}
