// internal/cli/models_search.go
package getllm

import (
	"strings"

	"github.com/spf13/cobra"
)

// modelsSearchCmd implements 'models search', a substring match over model
// names and descriptions.
var modelsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the model catalog",
	Long:  `The 'search' subcommand filters the catalog by a case-insensitive substring match over model names and descriptions.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		mgr := newManagerFunc()

		models, err := mgr.Search(cmd.Context(), strings.Join(args, " "))
		if err := tolerateStale(out, err); err != nil {
			return err
		}

		printModels(out, models)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsSearchCmd)
}
