// internal/cli/models_pick.go
package getllm

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getllm/getllm/internal/tui"
)

// pickModelFunc proxies tui.PickModel to allow tests to substitute the
// interactive picker.
var pickModelFunc = tui.PickModel

// modelsPickCmd implements 'models pick', an interactive list that persists
// the chosen entry as the default model.
var modelsPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick the default model interactively",
	Long:  `The 'pick' subcommand opens an interactive catalog list. Selecting an entry stores it as the default model; q quits without changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		mgr := newManagerFunc()

		models, err := mgr.Models(cmd.Context())
		if err := tolerateStale(out, err); err != nil {
			return err
		}

		name, chosen, err := pickModelFunc(models)
		if err != nil {
			return err
		}
		if !chosen {
			fmt.Fprintln(out, "no model selected")
			return nil
		}

		if err := mgr.SetDefaultModel(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Fprintln(out, successText(fmt.Sprintf("default model set to %s", name)))

		for _, model := range models {
			if model.Name == name && !model.Installed {
				fmt.Fprintf(out, "run 'getllm models install %s' to download it\n", name)
				break
			}
		}
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsPickCmd)
}
