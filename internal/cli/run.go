// internal/cli/run.go
package getllm

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// runCmd implements 'run', which sends a one-shot prompt to a model and
// prints the reply.
var runCmd = &cobra.Command{
	Use:   "run [prompt]",
	Short: "Send a one-shot prompt to a model",
	Long:  `The 'run' command forwards a prompt to the runtime (default: ollama run) and prints the captured reply. Without --model the stored default model is used.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		prompt := strings.Join(args, " ")

		reply, err := newManagerFunc().Run(cmd.Context(), model, prompt)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("model", "m", "", "model to run (defaults to the stored default)")
}
