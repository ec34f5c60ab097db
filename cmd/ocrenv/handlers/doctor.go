package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/boletoscan/ocrenv/internal/config"
	"github.com/boletoscan/ocrenv/internal/manifest"
	"github.com/boletoscan/ocrenv/internal/util/prerequisites"
)

// DoctorStatus represents the environment diagnostic status.
type DoctorStatus struct {
	ServiceName string          `json:"serviceName"`
	Tools       []ToolStatus    `json:"tools"`
	Packages    []PackageStatus `json:"packages"`
	Manifest    ManifestStatus  `json:"manifest"`
}

// ToolStatus represents the availability of one external tool.
type ToolStatus struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
}

// PackageStatus represents the install state of one system package.
type PackageStatus struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
}

// ManifestStatus represents the dependency manifest health.
type ManifestStatus struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Packages int    `json:"packages"`
	Pinned   int    `json:"pinned"`
	Error    string `json:"error,omitempty"`
}

// Doctor handles the doctor command.
//
// It checks the tools apply shells out to, probes which system packages
// are already installed, and validates the dependency manifest. Missing
// required tools make doctor fail so the exit status reflects an
// environment apply cannot run in.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	status := buildDoctorStatus(ctx, cfg)

	if jsonOutput {
		if err := printDoctorJSON(status); err != nil {
			return err
		}
	} else {
		printDoctorText(status)
	}

	return requiredToolsError(status)
}

func buildDoctorStatus(ctx context.Context, cfg *config.Config) *DoctorStatus {
	status := &DoctorStatus{
		ServiceName: cfg.ServiceName,
		Tools:       probeTools(ctx, cfg),
		Manifest:    probeManifest(cfg.Manifest),
	}
	status.Packages = probePackages(ctx, cfg)
	return status
}

// probeTools checks availability of every tool apply may invoke, plus the
// OCR engine binary that provisioning installs.
func probeTools(ctx context.Context, cfg *config.Config) []ToolStatus {
	tools := prerequisites.DefaultTools()
	if cfg.UseSudo {
		tools = append(tools, prerequisites.SudoTools()...)
	}
	tools = append(tools, prerequisites.PostProvisionTools()...)

	results := checkTools(ctx, tools)

	statuses := make([]ToolStatus, 0, len(results.Results))
	for _, r := range results.Results {
		statuses = append(statuses, ToolStatus{
			Name:     r.Tool.Name,
			Required: r.Tool.Required,
			Found:    r.Found,
			Path:     r.Path,
			Version:  r.Version,
		})
	}
	return statuses
}

// probePackages asks the system package manager which of the configured
// packages are already installed. Probe failures (e.g. dpkg-query missing)
// report the package as not installed.
func probePackages(ctx context.Context, cfg *config.Config) []PackageStatus {
	client := newSystemManager(cfg, os.Stdout, os.Stderr)

	var statuses []PackageStatus
	for _, pkg := range cfg.SystemPackages() {
		installed, err := client.IsInstalled(ctx, pkg)
		statuses = append(statuses, PackageStatus{
			Name:      pkg,
			Installed: err == nil && installed,
		})
	}
	return statuses
}

func probeManifest(path string) ManifestStatus {
	status := ManifestStatus{Path: path}

	m, err := parseManifestFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			status.Exists = true
			status.Error = err.Error()
		}
		return status
	}

	status.Exists = true
	status.Packages = len(m.Names())
	for _, r := range m.Requirements {
		if r.Kind == manifest.KindRequirement && r.Pinned() {
			status.Pinned++
		}
	}
	return status
}

func requiredToolsError(status *DoctorStatus) error {
	var missing []string
	for _, tool := range status.Tools {
		if tool.Required && !tool.Found {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

func printDoctorJSON(status *DoctorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printDoctorText(status *DoctorStatus) {
	fmt.Printf("ocrenv doctor: %s\n\n", status.ServiceName)

	fmt.Println("Tools")
	for _, tool := range status.Tools {
		mark := "[OK]"
		detail := tool.Version
		if !tool.Found {
			mark = "[!!]"
			detail = "not found"
			if !tool.Required {
				mark = "[--]"
				detail = "not found (optional)"
			}
		}
		fmt.Printf("  %s %-12s %s\n", mark, tool.Name, detail)
	}

	fmt.Println("\nSystem packages")
	for _, pkg := range status.Packages {
		mark := "[--]"
		detail := "not installed"
		if pkg.Installed {
			mark = "[OK]"
			detail = "installed"
		}
		fmt.Printf("  %s %-24s %s\n", mark, pkg.Name, detail)
	}

	fmt.Println("\nManifest")
	switch {
	case status.Manifest.Error != "":
		fmt.Printf("  [!!] %s: %s\n", status.Manifest.Path, status.Manifest.Error)
	case !status.Manifest.Exists:
		fmt.Printf("  [!!] %s: does not exist\n", status.Manifest.Path)
	default:
		fmt.Printf("  [OK] %s: %d packages (%d pinned)\n",
			status.Manifest.Path, status.Manifest.Packages, status.Manifest.Pinned)
	}
}
