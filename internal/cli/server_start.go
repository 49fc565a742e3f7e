// internal/cli/server_start.go
package getllm

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// serverStartTimeout bounds how long 'server start' waits for readiness.
const serverStartTimeout = 30 * time.Second

// serverStartCmd implements 'server start', which spawns the runtime server
// and waits until it answers its version probe.
var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the local runtime server",
	Long:  `The 'start' subcommand spawns the runtime server (default: ollama serve) unless one already answers, then waits for it to become ready. The server keeps running after getllm exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		ctx, cancel := context.WithTimeout(cmd.Context(), serverStartTimeout)
		defer cancel()

		started, err := newServerFunc().Start(ctx)
		if err != nil {
			return err
		}
		if !started {
			fmt.Fprintln(out, "runtime server already running")
			return nil
		}
		fmt.Fprintln(out, successText("runtime server started"))
		return nil
	},
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
}
