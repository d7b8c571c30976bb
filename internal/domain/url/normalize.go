// Package url normalizes the page addresses given on the command line.
package url

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Normalize turns user input into an address a browser can open:
//   - absolute URLs (http, https, file, about, data) are returned as-is
//   - paths that exist on disk (or start with /, ./, ../, ~/) become file:// URLs
//   - localhost and IP addresses get http://
//   - anything else that contains a dot gets https://
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if hasScheme(input) {
		return input
	}
	if isLocalPath(input) {
		return fileURL(input)
	}
	if isLocalHost(input) {
		return "http://" + input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	return input
}

// LooksLikeURL checks if the input appears to be a URL.
// Returns true for strings like "github.com", "example.org/docs", etc.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasScheme(input) {
		return true
	}
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

func hasScheme(input string) bool {
	for _, prefix := range []string{"http://", "https://", "file://", "about:", "data:"} {
		if strings.HasPrefix(strings.ToLower(input), prefix) {
			return true
		}
	}
	return false
}

func isLocalPath(input string) bool {
	for _, prefix := range []string{"/", "./", "../", "~/"} {
		if strings.HasPrefix(input, prefix) {
			return true
		}
	}
	_, err := os.Stat(input)
	return err == nil
}

func fileURL(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func isLocalHost(input string) bool {
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if h, _, found := strings.Cut(host, ":"); found && !strings.Contains(h, "]") {
		host = h
	}
	if host == "localhost" {
		return true
	}
	return isIPv4(host)
}

func isIPv4(host string) bool {
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 || strings.Trim(p, "0123456789") != "" {
			return false
		}
	}
	return true
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Normalizes by stripping "www." prefix so example.com and www.example.com
// resolve to the same value.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// FileStem returns a file-name-safe label for the page at rawURL, or "" when
// the URL has no host.
func FileStem(rawURL string) string {
	return sanitizeDomain(ExtractDomain(rawURL))
}

// sanitizeDomain replaces unsafe filesystem characters with underscores.
func sanitizeDomain(domain string) string {
	replacer := strings.NewReplacer(
		":", "_",
		"/", "_",
		"\\", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(domain)
}
