package cmd

import (
	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/internal/config"
)

// flag name per config key; flags a command does not define are skipped
var configFlags = []struct{ key, flag string }{
	{"monitor.interval", "interval"},
	{"monitor.schedule", "schedule"},
	{"general.log_file", "log-file"},
}

// bindFlags applies the flags set on the command line over the loaded
// configuration.
func bindFlags(cmd *cobra.Command) error {
	for _, f := range configFlags {
		if err := config.BindFlag(f.key, cmd.Flags().Lookup(f.flag)); err != nil {
			return err
		}
	}

	if f := cmd.Flags().Lookup("no-nvml"); f != nil && f.Changed {
		noNVML, err := cmd.Flags().GetBool("no-nvml")
		if err != nil {
			return err
		}
		return config.SetConfig("monitor.nvml", !noNVML)
	}
	return nil
}
