package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/areashot/internal/cli/styles"
	"github.com/bnema/areashot/internal/infrastructure/config"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
	Long: `Show, change and edit the areashot configuration.

Environment variables override the file: AREASHOT_<SECTION>_<KEY>, e.g.
AREASHOT_CAPTURE_FORMAT=jpeg or AREASHOT_BROWSER_REMOTE_URL=http://localhost:9222.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Println(app.Manager.GetConfigFile())
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List effective settings",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		keys := app.Manager.Keys()
		entries := make([]styles.ConfigEntry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, styles.ConfigEntry{Key: k, Value: app.Manager.Value(k)})
		}
		r := styles.NewConfigRenderer(app.Theme)
		fmt.Print(r.RenderConfigInfo(app.Manager.GetConfigFile()))
		fmt.Print(r.RenderEntries(entries))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		v := app.Manager.Value(args[0])
		if v == nil {
			return fmt.Errorf("unknown config key %q", args[0])
		}
		fmt.Println(v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save the file",
	Example: `  areashot config set capture.format jpeg
  areashot config set selection.scroll_speed 24`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		r := styles.NewConfigRenderer(app.Theme)
		if err := app.Manager.Set(args[0], args[1]); err != nil {
			fmt.Fprint(os.Stderr, r.RenderError(err))
			return err
		}
		fmt.Print(r.RenderSet(args[0], app.Manager.Value(args[0])))
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		path := app.Manager.GetConfigFile()
		editor := editorCommand()

		fmt.Print(styles.NewConfigRenderer(app.Theme).RenderOpening(path, editor))
		argv := append(strings.Fields(editor), path)
		c := exec.CommandContext(app.Ctx(), argv[0], argv[1:]...)
		c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("run %s: %w", editor, err)
		}

		// Re-read to report mistakes right away.
		mgr, err := config.NewManagerWithFile(path)
		if err != nil {
			return err
		}
		return mgr.Load()
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file. With --write, store it next to
the config file, where the "#:schema" header points editors to it.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		if schemaWrite {
			dir := filepath.Dir(app.Manager.GetConfigFile())
			if err := config.GenerateSchemaFile(dir); err != nil {
				return err
			}
			fmt.Print(styles.NewConfigRenderer(app.Theme).RenderSchemaWritten(filepath.Join(dir, config.SchemaFileName)))
			return nil
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(config.Schema())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configListCmd, configGetCmd, configSetCmd, configEditCmd, configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&schemaWrite, "write", "w", false, "write config.schema.json next to the config file")
}

func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	return "vi"
}
