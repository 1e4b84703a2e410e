package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/internal/config"
	"gitlab.com/nunet/cudamon/internal/logger"
	"gitlab.com/nunet/cudamon/utils"
)

var rootCmd = &cobra.Command{
	Use:     "cudamon",
	Short:   "CUDA device monitor",
	Long:    `Enumerates CUDA devices, matches them to NVML by PCI location and shows their properties and memory usage.`,
	Version: utils.Version,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: false,
		HiddenDefaultCmd:  true,
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func initConfig() {
	if err := config.LoadConfig(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
	}
}

func Execute() {
	defer logger.Sync()
	// CheckErr prints formatted error message, if there is any, and exits
	cobra.CheckErr(rootCmd.Execute())
}
