package url

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "http scheme unchanged",
			input: "http://example.com",
			want:  "http://example.com",
		},
		{
			name:  "https scheme unchanged",
			input: "https://example.com",
			want:  "https://example.com",
		},
		{
			name:  "file scheme unchanged",
			input: "file:///path/to/file.html",
			want:  "file:///path/to/file.html",
		},
		{
			name:  "about scheme unchanged",
			input: "about:blank",
			want:  "about:blank",
		},
		{
			name:  "data scheme unchanged",
			input: "data:text/html,<p>hi</p>",
			want:  "data:text/html,<p>hi</p>",
		},
		{
			name:  "domain gets https",
			input: "example.com",
			want:  "https://example.com",
		},
		{
			name:  "domain with path gets https",
			input: "example.com/path",
			want:  "https://example.com/path",
		},
		{
			name:  "surrounding spaces trimmed",
			input: "  example.com  ",
			want:  "https://example.com",
		},
		{
			name:  "localhost gets http",
			input: "localhost:8080/app",
			want:  "http://localhost:8080/app",
		},
		{
			name:  "ip address gets http",
			input: "192.168.1.10",
			want:  "http://192.168.1.10",
		},
		{
			name:  "ip address with port gets http",
			input: "127.0.0.1:3000",
			want:  "http://127.0.0.1:3000",
		},
		{
			name:  "absolute path becomes file url",
			input: "/tmp/page.html",
			want:  "file:///tmp/page.html",
		},
		{
			name:  "plain word unchanged",
			input: "hello world",
			want:  "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_LocalFiles(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "report.html")
	if err := os.WriteFile(page, []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	got := Normalize("report.html")
	want := "file://" + filepath.ToSlash(page)
	if got != want {
		t.Errorf("Normalize(existing file) = %q, want %q", got, want)
	}

	got = Normalize("./report.html")
	if got != want {
		t.Errorf("Normalize(./existing file) = %q, want %q", got, want)
	}
}

func TestNormalize_HomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := Normalize("~/notes/index.html")
	want := "file://" + filepath.ToSlash(filepath.Join(home, "notes", "index.html"))
	if got != want {
		t.Errorf("Normalize(~/...) = %q, want %q", got, want)
	}
}

func TestLooksLikeURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"example.com", true},
		{"docs.example.com/guide", true},
		{"https://example.com", true},
		{"about:blank", true},
		{"hello world", false},
		{"localhost", false},
	}

	for _, tt := range tests {
		if got := LooksLikeURL(tt.input); got != tt.want {
			t.Errorf("LooksLikeURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.example.com/a?b=c", "example.com"},
		{"http://localhost:8080/", "localhost"},
		{"file:///tmp/page.html", ""},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractDomain(tt.input); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFileStem(t *testing.T) {
	if got := FileStem("https://docs.example.com/page"); got != "docs.example.com" {
		t.Errorf("FileStem() = %q", got)
	}
	if got := FileStem("about:blank"); got != "" {
		t.Errorf("FileStem(about:blank) = %q, want empty", got)
	}
}
