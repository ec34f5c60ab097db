package commands

import (
	"github.com/spf13/cobra"

	"github.com/boletoscan/ocrenv/cmd/ocrenv/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// This command guides users through creating an ocrenv.yaml using an
// interactive wizard with text inputs, multi-select, and confirm prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "ocrenv.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create an ocrenv configuration file.

This command walks you through configuring the OCR runtime environment
step by step. It will ask about:

  - Service name (display only)
  - Dependency manifest path
  - OCR language data packs to install
  - PDF rasterization support (poppler-utils)
  - Whether to prefix package manager calls with sudo

The defaults match the standard boleto analysis setup: Portuguese
language data and requirements.txt in the current directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "ocrenv.yaml", "Output file path")

	return cmd
}
