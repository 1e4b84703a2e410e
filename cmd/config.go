package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Prints the configuration after defaults, config file and CUDAMON_* environment variables are applied.`,
	Run: func(cmd *cobra.Command, args []string) {
		printConfig(cmd.OutOrStdout(), config.ConfigFile(), config.GetConfig())
	},
}

// custom formatter for printing the configuration YAML-like
func printConfig(w io.Writer, file string, cfg *config.Config) {
	if file == "" {
		file = "none, defaults and environment only"
	}
	fmt.Fprintf(w, "# config file: %s\n", file)

	fmt.Fprintln(w, "general:")
	fmt.Fprintf(w, "  debug: %t\n", cfg.General.Debug)
	fmt.Fprintf(w, "  log_file: %q\n", cfg.General.LogFile)

	fmt.Fprintln(w, "monitor:")
	fmt.Fprintf(w, "  interval: %s\n", cfg.Monitor.Interval)
	fmt.Fprintf(w, "  schedule: %q\n", cfg.Monitor.Schedule)
	fmt.Fprintf(w, "  nvml: %t\n", cfg.Monitor.NVML)
	fmt.Fprintf(w, "  reinit_management: %t\n", cfg.Monitor.ReinitManagement)

	fmt.Fprintln(w, "display:")
	fmt.Fprintf(w, "  card_width: %d\n", cfg.Display.CardWidth)
	fmt.Fprintf(w, "  card_height: %d\n", cfg.Display.CardHeight)
	fmt.Fprintf(w, "  origin_x: %d\n", cfg.Display.OriginX)
	fmt.Fprintf(w, "  origin_y: %d\n", cfg.Display.OriginY)
	fmt.Fprintf(w, "  refresh_interval: %s\n", cfg.Display.RefreshInterval)
}
