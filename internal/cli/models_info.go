// internal/cli/models_info.go
package getllm

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getllm/getllm/internal/manager"
	"github.com/getllm/getllm/internal/util"
)

// modelsInfoCmd implements 'models info', which prints one catalog entry in
// full.
var modelsInfoCmd = &cobra.Command{
	Use:   "info [model]",
	Short: "Show one catalog entry",
	Long:  `The 'info' subcommand prints the catalog entry for the named model, including its size and install state.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		name := args[0]

		models, err := newManagerFunc().Models(cmd.Context())
		if err := tolerateStale(out, err); err != nil {
			return err
		}

		for _, model := range models {
			if !strings.EqualFold(model.Name, name) {
				continue
			}
			desc := util.WrapToWidth(model.Description, 64)
			desc = strings.ReplaceAll(desc, "\n", "\n             ")
			fmt.Fprintf(out, "Name:        %s\n", model.Name)
			fmt.Fprintf(out, "Description: %s\n", desc)
			fmt.Fprintf(out, "Size:        %s\n", util.FormatBytes(model.SizeBytes))
			installed := "no"
			if model.Installed {
				installed = successText("yes")
			}
			fmt.Fprintf(out, "Installed:   %s\n", installed)
			return nil
		}

		return fmt.Errorf("%w: %q", manager.ErrUnknownModel, name)
	},
}

func init() {
	modelsCmd.AddCommand(modelsInfoCmd)
}
