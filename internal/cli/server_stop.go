// internal/cli/server_stop.go
package getllm

import (
	"fmt"

	"github.com/spf13/cobra"
)

// serverStopCmd implements 'server stop'. Only a server spawned by the
// current process can be stopped; a standalone one-shot invocation owns no
// server and says so.
var serverStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a runtime server started by this process",
	Long:  `The 'stop' subcommand terminates a runtime server that this process started. Servers started elsewhere are left alone; stop them from where they were launched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		srv := newServerFunc()

		stopped, err := srv.Stop()
		if err != nil {
			return err
		}
		if !stopped {
			if _, probeErr := srv.Version(cmd.Context()); probeErr == nil {
				fmt.Fprintln(out, "runtime server is running but was not started by this process; stop it where it was launched")
			} else {
				fmt.Fprintln(out, "no runtime server running")
			}
			return nil
		}
		fmt.Fprintln(out, successText("runtime server stopped"))
		return nil
	},
}

func init() {
	serverCmd.AddCommand(serverStopCmd)
}
