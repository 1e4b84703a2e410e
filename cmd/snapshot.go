package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/cmd/backend"
	"gitlab.com/nunet/cudamon/display"
	"gitlab.com/nunet/cudamon/internal/config"
	"gitlab.com/nunet/cudamon/monitor"
)

func NewSnapshotCmd(devices backend.Devices) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Poll CUDA devices once and print the result",
		Long:  `Runs a single poll cycle and prints one card per device, or the snapshot as JSON with --json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd); err != nil {
				return err
			}
			cfg := config.GetConfig()

			runtime, err := devices.Runtime()
			if err != nil {
				return err
			}

			m := monitor.New(runtime, devices.Management(), devices.Describer(), monitor.OptionsFromConfig(cfg))
			if err := m.Open(); err != nil {
				return err
			}
			defer m.Exit()

			snapshot, err := m.PollOnce()
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return fmt.Errorf("unable to encode snapshot: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			if snapshot.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No CUDA devices found")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.Draw(snapshot.Records,
				cfg.Display.OriginX, cfg.Display.OriginY, cfg.Display.CardWidth, cfg.Display.CardHeight))
			if snapshot.Errors > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d driver call(s) failed, see the log for details\n", snapshot.Errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")
	cmd.Flags().Bool("no-nvml", false, "read memory from the CUDA runtime only, never load NVML")

	return cmd
}
