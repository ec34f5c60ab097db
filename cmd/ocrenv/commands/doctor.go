package commands

import (
	"github.com/spf13/cobra"

	"github.com/boletoscan/ocrenv/cmd/ocrenv/handlers"
)

// Doctor returns the command for diagnosing the provisioning environment.
//
// This command checks the external tools apply shells out to, probes which
// system packages are already installed, and validates the dependency
// manifest.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect ocrenv.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the provisioning environment",
		Long: `Diagnose the environment ocrenv would provision.

Checks:
  - Required tools (apt-get, python3) are available in PATH
  - Optional tools (dpkg-query, tesseract, sudo) and their versions
  - Which system packages are already installed
  - The dependency manifest parses cleanly

Examples:
  # Diagnose the environment
  ocrenv doctor

  # Machine-readable output
  ocrenv doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ocrenv.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
