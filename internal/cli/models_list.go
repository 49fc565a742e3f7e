// internal/cli/models_list.go
package getllm

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getllm/getllm/internal/catalog"
	"github.com/getllm/getllm/internal/util"
)

// modelsListCmd implements 'models list', which prints the catalog with an
// installed marker per entry.
var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models from the catalog",
	Long:  `The 'list' subcommand prints the model catalog, marking models already installed through the runtime. --cached serves the local snapshot without refreshing; --refresh forces a fetch first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cachedOnly, _ := cmd.Flags().GetBool("cached")
		refresh, _ := cmd.Flags().GetBool("refresh")
		return listModels(cmd.Context(), cmd.OutOrStdout(), cachedOnly, refresh)
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)

	modelsListCmd.Flags().Bool("cached", false, "serve the snapshot on disk without refreshing")
	modelsListCmd.Flags().Bool("refresh", false, "force a catalog refresh before listing")
}

// listModels fetches the catalog per the chosen mode and prints it.
func listModels(ctx context.Context, out io.Writer, cachedOnly, refresh bool) error {
	mgr := newManagerFunc()

	var (
		models []catalog.Model
		err    error
	)
	switch {
	case cachedOnly:
		models, err = mgr.CachedModels(ctx)
	case refresh:
		models, err = mgr.Refresh(ctx)
	default:
		models, err = mgr.Models(ctx)
	}
	if err := tolerateStale(out, err); err != nil {
		return err
	}

	printModels(out, models)
	return nil
}

// printModels renders catalog entries one per line, installed entries first
// column marked. Descriptions are truncated so a row stays on one line.
func printModels(out io.Writer, models []catalog.Model) {
	for _, model := range models {
		marker := "   "
		if model.Installed {
			marker = successText(" * ")
		}
		size := util.FormatBytes(model.SizeBytes)
		desc := util.TruncateRunes(model.Description, 72)
		fmt.Fprintf(out, "%s%-32s %10s  %s\n", marker, model.Name, size, desc)
	}
	fmt.Fprintf(out, "\n%d models (* installed)\n", len(models))
}
