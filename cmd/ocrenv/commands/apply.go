package commands

import (
	"github.com/spf13/cobra"

	"github.com/boletoscan/ocrenv/cmd/ocrenv/handlers"
)

// Apply returns the command for provisioning the OCR runtime environment.
//
// This command runs the full provisioning sequence: refreshing the system
// package index, installing the OCR engine and language data, upgrading
// pip, and installing the Python dependency manifest.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect ocrenv.yaml)
//	--plain: Disable the interactive dashboard and print log lines instead
func Apply() *cobra.Command {
	var configPath string
	var plain bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Provision the environment",
		Long: `Provision the OCR analysis runtime environment.

This command runs four steps in order, stopping at the first failure:

  1. Refresh the system package index
  2. Install the OCR engine and language data packages
  3. Upgrade the Python package installer (pip)
  4. Install the Python dependency manifest

Each step is idempotent, so re-running apply after a failure resumes
safely. If no config file is specified, it looks for ocrenv.yaml in the
current directory and falls back to built-in defaults.

Examples:
  # Provision using ocrenv.yaml or defaults
  ocrenv apply

  # Provision using a specific config file
  ocrenv apply -c staging.yaml

  # Plain log output (no dashboard), e.g. inside CI
  ocrenv apply --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), configPath, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ocrenv.yaml)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the interactive dashboard")

	return cmd
}
