// internal/cli/models_install.go
package getllm

import (
	"fmt"

	"github.com/spf13/cobra"
)

// modelsInstallCmd implements 'models install', which pulls a model through
// the runtime binary.
var modelsInstallCmd = &cobra.Command{
	Use:   "install [model]",
	Short: "Install a model through the runtime",
	Long:  `The 'install' subcommand pulls the named model with the runtime binary (default: ollama pull). Pulls can take a while on the first download.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		name := args[0]

		fmt.Fprintf(out, "Installing %s...\n", name)
		if err := newManagerFunc().Install(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Fprintln(out, successText(fmt.Sprintf("Installed %s", name)))
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsInstallCmd)
}
