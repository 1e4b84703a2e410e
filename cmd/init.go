package cmd

import (
	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/cmd/backend"
)

var devices backend.Devices = &backend.Drivers{}

func init() {
	cobra.OnInitialize(initConfig)

	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(NewMonitorCmd(devices))
	rootCmd.AddCommand(NewSnapshotCmd(devices))
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
