package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bnema/areashot/internal/infrastructure/config"
)

const dirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate man pages or markdown for every command",
	Long: `Generate reference documentation from the command definitions.

Formats:
  man       groff man pages, installed to $XDG_DATA_HOME/man/man1 by default
  markdown  one markdown file per command, written to ./docs by default

Examples:
  areashot gen-docs                     # then: man areashot-capture
  areashot gen-docs --format markdown
  areashot gen-docs --output ./man`,
	Args: cobra.NoArgs,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "output format: man, markdown")
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	dir := genDocsOutputDir
	if dir == "" {
		var err error
		if dir, err = defaultDocsDir(genDocsFormat); err != nil {
			return err
		}
	}

	files, err := writeDocs(rootCmd, genDocsFormat, dir)
	if err != nil {
		return err
	}
	printDocs(cmd.OutOrStdout(), genDocsFormat, dir, files)
	return nil
}

func defaultDocsDir(format string) (string, error) {
	switch format {
	case "man":
		dataDir, err := config.GetDataDir()
		if err != nil {
			return "", fmt.Errorf("resolve man directory: %w", err)
		}
		// GetDataDir ends in .../areashot; man pages live beside it.
		return filepath.Join(filepath.Dir(dataDir), "man", "man1"), nil
	case "markdown":
		return "docs", nil
	default:
		return "", fmt.Errorf("unsupported format %q (use: man, markdown)", format)
	}
}

// writeDocs renders the command tree under root into dir and returns the
// generated file names, sorted.
func writeDocs(root *cobra.Command, format, dir string) ([]string, error) {
	var (
		ext string
		gen func() error
	)
	switch format {
	case "man":
		ext = ".1"
		gen = func() error {
			now := time.Now()
			return doc.GenManTree(root, &doc.GenManHeader{
				Title:   "AREASHOT",
				Section: "1",
				Source:  "areashot " + buildInfo.Version,
				Manual:  "Areashot Manual",
				Date:    &now,
			}, dir)
		}
	case "markdown":
		ext = ".md"
		gen = func() error { return doc.GenMarkdownTree(root, dir) }
	default:
		return nil, fmt.Errorf("unsupported format %q (use: man, markdown)", format)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Reproducible output: no "Auto generated by spf13/cobra" footer.
	root.DisableAutoGenTag = true
	if err := gen(); err != nil {
		return nil, fmt.Errorf("generate %s docs: %w", format, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), root.Name()) && filepath.Ext(e.Name()) == ext {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

func printDocs(w io.Writer, format, dir string, files []string) {
	fmt.Fprintf(w, "Wrote %d %s files to %s\n", len(files), format, dir)
	for _, f := range files {
		fmt.Fprintf(w, "  - %s\n", f)
	}
	if format == "man" {
		fmt.Fprintln(w, "Run 'mandb' if 'man areashot' is not found.")
	}
}
