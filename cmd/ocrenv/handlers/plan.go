package handlers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/boletoscan/ocrenv/internal/manifest"
)

// parseManifestFile parses the dependency manifest (for testing injection).
var parseManifestFile = manifest.ParseFile

// Plan resolves the configuration and prints the provisioning steps apply
// would run, without executing anything.
func Plan(_ context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sudo := ""
	if cfg.UseSudo {
		sudo = "sudo "
	}

	fmt.Printf("Provisioning plan for %s\n\n", cfg.ServiceName)

	fmt.Printf("  1. Refresh package index\n")
	fmt.Printf("       %s%s update\n\n", sudo, cfg.AptBinary)

	fmt.Printf("  2. Install system packages\n")
	fmt.Printf("       %s%s install -y %s\n\n", sudo, cfg.AptBinary, strings.Join(cfg.SystemPackages(), " "))

	step := 3
	if cfg.ShouldUpgradeInstaller() {
		fmt.Printf("  3. Upgrade the Python package installer\n")
		fmt.Printf("       %s -m pip install --upgrade pip\n\n", cfg.PythonBinary)
		step = 4
	}

	fmt.Printf("  %d. Install Python dependencies\n", step)
	fmt.Printf("       %s -m pip install -r %s\n\n", cfg.PythonBinary, cfg.Manifest)

	printManifestSummary(cfg.Manifest)
	return nil
}

// printManifestSummary parses the manifest and summarizes what step 4
// would install. A missing or malformed manifest is reported but does not
// fail the plan; apply itself will fail on it.
func printManifestSummary(path string) {
	m, err := parseManifestFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("Manifest %s does not exist yet; apply will fail at the dependency step.\n", path)
			return
		}
		fmt.Printf("Manifest %s could not be parsed: %v\n", path, err)
		return
	}

	names := m.Names()
	pinned := 0
	for _, r := range m.Requirements {
		if r.Kind == manifest.KindRequirement && r.Pinned() {
			pinned++
		}
	}

	fmt.Printf("Manifest %s: %d packages (%d pinned)", path, len(names), pinned)
	if n := m.CountByKind(manifest.KindEditable); n > 0 {
		fmt.Printf(", %d editable", n)
	}
	if n := m.CountByKind(manifest.KindReference); n > 0 {
		fmt.Printf(", %d referenced files", n)
	}
	fmt.Println()

	if len(names) > 0 {
		fmt.Printf("  %s\n", strings.Join(names, ", "))
	}
}
