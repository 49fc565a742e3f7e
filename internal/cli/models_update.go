// internal/cli/models_update.go
package getllm

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getllm/getllm/internal/catalog"
)

// modelsUpdateCmd implements 'models update', which forces a catalog refresh
// and reports what the snapshot now holds.
var modelsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the model catalog snapshot",
	Long:  `The 'update' subcommand fetches the remote catalog and rewrites the local snapshot. When the remote is unreachable and no snapshot exists, --seed writes a small builtin list of coder-friendly models instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetBool("seed")
		out := cmd.OutOrStdout()
		mgr := newManagerFunc()

		models, err := mgr.Refresh(cmd.Context())
		if err != nil {
			var stale *catalog.StaleFallbackError
			if errors.As(err, &stale) {
				fmt.Fprintln(out, warnText(err.Error()))
				fmt.Fprintf(out, "%d models (cached)\n", len(models))
				return nil
			}
			if errors.Is(err, catalog.ErrUnavailable) && seed {
				seeded, seedErr := mgr.Seed()
				if seedErr != nil {
					return seedErr
				}
				fmt.Fprintf(out, "catalog unreachable; seeded %d builtin models\n", len(seeded))
				return nil
			}
			return err
		}

		fmt.Fprintf(out, "catalog updated: %d models\n", len(models))
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsUpdateCmd)

	modelsUpdateCmd.Flags().Bool("seed", false, "fall back to the builtin model list when the remote is unreachable")
}
