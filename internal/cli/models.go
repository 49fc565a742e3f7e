// internal/cli/models.go
package getllm

import (
	"github.com/spf13/cobra"
)

// modelsCmd represents the 'models' command group for catalog and install
// operations.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Group commands for managing models",
	Long:  `The 'models' command groups subcommands that list, search, install and configure models.`,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
