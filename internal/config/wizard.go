package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	ServiceName string
	Manifest    string
	Languages   []string
	ExtraPDF    bool
	UseSudo     bool
}

// ToConfig converts wizard answers into a full configuration.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		ServiceName: r.ServiceName,
		Manifest:    r.Manifest,
		Languages:   r.Languages,
		UseSudo:     r.UseSudo,
	}
	if r.ExtraPDF {
		// poppler-utils provides pdftoppm, needed to rasterize PDF boletos
		// before handing pages to the OCR engine.
		cfg.ExtraPackages = []string{"poppler-utils"}
	}
	cfg.applyDefaults()
	return cfg
}

// languageOptions are the language data packs offered by the wizard.
// Any tesseract-supported code can still be set directly in ocrenv.yaml.
func languageOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Portuguese (por)", "por").Selected(true),
		huh.NewOption("English (eng)", "eng"),
		huh.NewOption("Spanish (spa)", "spa"),
		huh.NewOption("German (deu)", "deu"),
		huh.NewOption("French (fra)", "fra"),
	}
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		ServiceName: "ocr-analysis",
		Manifest:    DefaultManifest,
		Languages:   []string{DefaultLanguage},
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Service name").
				Description("Name of the service this environment hosts").
				Placeholder("ocr-analysis").
				Value(&result.ServiceName).
				Validate(validateServiceName),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Dependency manifest").
				Description("Path to the pip requirements file").
				Placeholder(DefaultManifest).
				Value(&result.Manifest).
				Validate(validateManifestPath),
		),

		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("OCR languages").
				Description("Language data packs installed with the engine").
				Options(languageOptions()...).
				Validate(validateLanguageSelection).
				Value(&result.Languages),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("PDF support").
				Description("Install poppler-utils for PDF page rasterization?").
				Value(&result.ExtraPDF),

			huh.NewConfirm().
				Title("Use sudo").
				Description("Prefix system package commands with sudo (needed when not running as root)").
				Value(&result.UseSudo),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func validateServiceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("service name must not be empty")
	}
	return nil
}

func validateManifestPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("manifest path must not be empty")
	}
	return nil
}

func validateLanguageSelection(langs []string) error {
	if len(langs) == 0 {
		return fmt.Errorf("select at least one language")
	}
	return nil
}
