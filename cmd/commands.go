package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tmenu/internal/ui"
	"github.com/oakwood-commons/tmenu/pkg/settings"
)

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	name := settings.CliBinaryName
	if cfg, err := ui.EmbeddedDefaultConfig(); err == nil && cfg.App.About.Name != "" {
		name = cfg.App.About.Name
	}
	return fmt.Sprintf("%s %s (commit %s, %s)", name,
		settings.VersionInformation.BuildVersion,
		settings.VersionInformation.Commit,
		runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tmenu version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

// configCmd prints the configuration in effect: the embedded defaults with
// the user file merged on top.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := encodeConfig(rootCfg, configOutput)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		def := rootCfg.UI.Theme.Default
		if def == "" {
			def = "dark"
		}
		w := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(w, "Available themes (default: %s):\n", def); err != nil {
			return err
		}
		for _, name := range ui.ThemeNames(rootCfg) {
			if _, err := fmt.Fprintf(w, " - %s\n", name); err != nil {
				return err
			}
		}
		return nil
	},
}
