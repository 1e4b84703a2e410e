package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/nunet/cudamon/utils"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the cudamon version",
	Long:  `This command prints the version and commit cudamon was built from.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), utils.VersionString())
	},
}
