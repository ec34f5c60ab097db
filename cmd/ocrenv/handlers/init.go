package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/boletoscan/ocrenv/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfigFile writes the config to a file.
	writeConfigFile = config.WriteYAML
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("ocrenv - OCR runtime environment provisioning")
	fmt.Println("=============================================")
	fmt.Println()
	fmt.Println("This wizard creates a provisioning configuration with sensible defaults.")
	fmt.Println("The defaults match the standard boleto analysis setup.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Environment Summary")
	fmt.Println("-------------------")
	fmt.Printf("  Service:         %s\n", cfg.ServiceName)
	fmt.Printf("  Manifest:        %s\n", cfg.Manifest)
	fmt.Printf("  System packages: %s\n", strings.Join(cfg.SystemPackages(), ", "))
	fmt.Printf("  Sudo:            %t\n", cfg.UseSudo)
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Preview the provisioning steps:")
	fmt.Println("     ocrenv plan")
	fmt.Println()
	fmt.Println("  3. Provision the environment:")
	fmt.Println("     ocrenv apply")
	fmt.Println()
}
