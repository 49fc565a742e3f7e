// internal/cli/models_default.go
package getllm

import (
	"fmt"

	"github.com/spf13/cobra"
)

// modelsDefaultCmd implements 'models default', which prints the stored
// default model, or sets it when a name is given.
var modelsDefaultCmd = &cobra.Command{
	Use:   "default [model]",
	Short: "Show or set the default model",
	Long:  `The 'default' subcommand prints the default model from the env file. With a model argument it validates the name against the catalog and the installed set, then persists it.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		mgr := newManagerFunc()

		if len(args) == 0 {
			name, ok := mgr.DefaultModel()
			if !ok {
				fmt.Fprintln(out, "no default model configured")
				return nil
			}
			fmt.Fprintln(out, name)
			return nil
		}

		if err := mgr.SetDefaultModel(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(out, successText(fmt.Sprintf("default model set to %s", args[0])))
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsDefaultCmd)
}
