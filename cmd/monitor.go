package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/cmd/backend"
	"gitlab.com/nunet/cudamon/display"
	"gitlab.com/nunet/cudamon/internal/config"
	"gitlab.com/nunet/cudamon/internal/logger"
	"gitlab.com/nunet/cudamon/monitor"
)

// log lines would tear the full-screen display, so they always go to a file
var defaultLogFile = filepath.Join(os.TempDir(), "cudamon.log")

func NewMonitorCmd(devices backend.Devices) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show CUDA devices in real time",
		Long: `Polls the CUDA runtime in the background and shows one card per device,
refreshed until q, esc or ctrl+c is pressed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd); err != nil {
				return err
			}
			cfg := config.GetConfig()

			logFile := cfg.General.LogFile
			if logFile == "" {
				logFile = defaultLogFile
			}
			if err := logger.RedirectTo(logFile); err != nil {
				return fmt.Errorf("unable to open log file: %w", err)
			}
			defer logger.RedirectTo("")

			runtime, err := devices.Runtime()
			if err != nil {
				return err
			}

			m := monitor.New(runtime, devices.Management(), devices.Describer(), monitor.OptionsFromConfig(cfg))
			if err := m.Setup(); err != nil {
				return fmt.Errorf("unable to start polling: %w", err)
			}
			defer m.Exit()

			program := tea.NewProgram(
				display.NewModel(m.Store(), display.OptionsFromConfig(cfg)),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("display failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Duration("interval", time.Second, "pause between poll cycles")
	cmd.Flags().String("schedule", "", "cron expression for poll cycles, overrides --interval")
	cmd.Flags().Bool("no-nvml", false, "read memory from the CUDA runtime only, never load NVML")
	cmd.Flags().String("log-file", "", "write logs to this file (default "+defaultLogFile+")")

	return cmd
}
