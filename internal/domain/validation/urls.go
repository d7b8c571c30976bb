package validation

import (
	"net/url"
	"strings"
)

// ValidateDevToolsURL checks a remote browser endpoint. Empty means launch locally.
func ValidateDevToolsURL(field string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return []string{field + " must be an absolute URL like ws://127.0.0.1:9222"}
	}
	switch parsed.Scheme {
	case "ws", "wss", "http", "https":
		return nil
	default:
		return []string{field + " must use ws, wss, http or https"}
	}
}

// ValidatePageURL checks a page to navigate to before capturing.
func ValidatePageURL(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{"page url cannot be empty"}
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" {
		return []string{"page url must be absolute (e.g. https://example.com)"}
	}
	if parsed.Scheme != "file" && parsed.Scheme != "about" && parsed.Scheme != "data" && parsed.Host == "" {
		return []string{"page url must include a host"}
	}
	return nil
}
