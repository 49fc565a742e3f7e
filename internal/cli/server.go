// internal/cli/server.go
package getllm

import (
	"github.com/spf13/cobra"
)

// serverCmd represents the 'server' command group for the local runtime
// server lifecycle.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Group commands for the local runtime server",
	Long:  `The 'server' command groups subcommands that start, probe and stop the local runtime server.`,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
