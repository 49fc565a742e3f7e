// internal/cli/server_status.go
package getllm

import (
	"fmt"

	"github.com/spf13/cobra"
)

// serverStatusCmd implements 'server status', which probes the runtime
// server's version endpoint.
var serverStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the runtime server is running",
	Long:  `The 'status' subcommand probes the runtime server's version endpoint and reports the result. A non-running server is a normal outcome, not a command failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		version, err := newServerFunc().Version(cmd.Context())
		if err != nil {
			fmt.Fprintln(out, "runtime server is not running")
			return nil
		}
		fmt.Fprintln(out, successText(fmt.Sprintf("runtime server is running (version %s)", version)))
		return nil
	},
}

func init() {
	serverCmd.AddCommand(serverStatusCmd)
}
