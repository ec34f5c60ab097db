package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Config holds the full ocrenv configuration.
type Config struct {
	// ServiceName identifies the environment being provisioned. Display only.
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// Manifest is the path to the pip requirements file installed in step 4.
	Manifest string `mapstructure:"manifest" yaml:"manifest"`

	// Languages lists tesseract language data packs to install alongside the
	// engine. Codes follow tesseract's traineddata naming (por, eng, chi_sim).
	Languages []string `mapstructure:"languages" yaml:"languages"`

	// ExtraPackages are additional system packages installed in step 2
	// (e.g. poppler-utils for PDF rasterization).
	ExtraPackages []string `mapstructure:"extra_packages" yaml:"extra_packages,omitempty"`

	// AptBinary overrides the system package manager binary.
	AptBinary string `mapstructure:"apt_binary" yaml:"apt_binary,omitempty"`

	// PythonBinary overrides the interpreter used to run pip (`<python> -m pip`).
	PythonBinary string `mapstructure:"python_binary" yaml:"python_binary,omitempty"`

	// UseSudo prefixes system package manager invocations with sudo.
	UseSudo bool `mapstructure:"use_sudo" yaml:"use_sudo"`

	// UpgradeInstaller controls step 3 (pip self-upgrade). Defaults to true.
	UpgradeInstaller *bool `mapstructure:"upgrade_installer" yaml:"upgrade_installer,omitempty"`
}

// Default returns the configuration used when no config file exists.
// It reproduces the fixed provisioning sequence exactly.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields with their defaults.
func (c *Config) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "ocr-analysis"
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{DefaultLanguage}
	}
	if c.AptBinary == "" {
		c.AptBinary = DefaultAptBinary
	}
	if c.PythonBinary == "" {
		c.PythonBinary = DefaultPythonBinary
	}
}

// ShouldUpgradeInstaller reports whether the installer self-upgrade step runs.
func (c *Config) ShouldUpgradeInstaller() bool {
	return c.UpgradeInstaller == nil || *c.UpgradeInstaller
}

// SystemPackages returns the system packages installed in step 2:
// the OCR engine, one language data pack per configured language, and any
// configured extras. Order is deterministic.
func (c *Config) SystemPackages() []string {
	pkgs := []string{EnginePackage}
	for _, lang := range c.Languages {
		pkgs = append(pkgs, LanguagePackPrefix+lang)
	}
	pkgs = append(pkgs, c.ExtraPackages...)
	return pkgs
}

// Tesseract traineddata codes: ISO 639-2/3 plus optional script or variant
// suffix (por, eng, chi_sim, aze_cyrl).
var languagePattern = regexp.MustCompile(`^[a-z]{3}(_[a-z]+)?$`)

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	var problems []string

	if c.Manifest == "" {
		problems = append(problems, "manifest path must not be empty")
	}
	if len(c.Languages) == 0 {
		problems = append(problems, "at least one OCR language is required")
	}
	for _, lang := range c.Languages {
		if !languagePattern.MatchString(lang) {
			problems = append(problems, fmt.Sprintf("invalid language code %q (expected tesseract code like por)", lang))
		}
	}
	for _, pkg := range c.ExtraPackages {
		if strings.TrimSpace(pkg) == "" {
			problems = append(problems, "extra_packages must not contain empty entries")
		} else if strings.HasPrefix(pkg, "-") {
			problems = append(problems, fmt.Sprintf("invalid package name %q", pkg))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
