package commands

import (
	"github.com/spf13/cobra"

	"github.com/boletoscan/ocrenv/cmd/ocrenv/handlers"
)

// Plan returns the command for previewing the provisioning sequence.
//
// This command resolves the configuration and prints the steps apply would
// run, including the exact system packages and a summary of the dependency
// manifest, without touching the system.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect ocrenv.yaml)
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what apply would do",
		Long: `Show the provisioning steps without executing them.

Resolves the configuration, lists the system packages that step 2 would
install, and summarizes the Python dependency manifest that step 4 would
install.

Examples:
  # Preview using ocrenv.yaml or defaults
  ocrenv plan

  # Preview a specific config file
  ocrenv plan -c staging.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ocrenv.yaml)")

	return cmd
}
