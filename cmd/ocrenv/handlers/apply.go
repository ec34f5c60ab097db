// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/boletoscan/ocrenv/internal/config"
	"github.com/boletoscan/ocrenv/internal/platform/apt"
	"github.com/boletoscan/ocrenv/internal/platform/pip"
	"github.com/boletoscan/ocrenv/internal/provisioning"
	"github.com/boletoscan/ocrenv/internal/provisioning/python"
	"github.com/boletoscan/ocrenv/internal/provisioning/system"
	"github.com/boletoscan/ocrenv/internal/ui/tui"
	"github.com/boletoscan/ocrenv/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile resolves the effective configuration.
	loadConfigFile = config.Load

	// newSystemManager creates the system package manager client.
	newSystemManager = func(cfg *config.Config, stdout, stderr io.Writer) apt.Manager {
		return &apt.RealClient{
			Binary:  cfg.AptBinary,
			UseSudo: cfg.UseSudo,
			Stdout:  stdout,
			Stderr:  stderr,
		}
	}

	// newPythonManager creates the pip client.
	newPythonManager = func(cfg *config.Config, stdout, stderr io.Writer) pip.Manager {
		return &pip.RealClient{
			Python: cfg.PythonBinary,
			Stdout: stdout,
			Stderr: stderr,
		}
	}

	// checkTools runs prerequisite checks.
	checkTools = prerequisites.Check

	// isInteractiveTTY reports whether stdout is an interactive terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// Apply provisions the OCR runtime environment.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates the configuration (auto-detects ocrenv.yaml)
//  2. Verifies the external tools the run shells out to are in PATH
//  3. Runs the provisioning pipeline: index refresh, system packages,
//     installer upgrade, dependency manifest
//
// Steps run strictly in order and the pipeline stops at the first failure;
// the failing tool's exit status is carried in the returned error. On an
// interactive terminal the run renders a live dashboard unless plain is
// set; otherwise it prints log lines.
func Apply(ctx context.Context, configPath string, plain bool) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	if err := checkApplyPrerequisites(ctx, cfg); err != nil {
		return err
	}

	phases := buildPhases()

	if plain || !isInteractiveTTY() {
		return applyPlain(ctx, cfg, phases)
	}
	return applyTUI(ctx, cfg, phases)
}

// buildPhases assembles the provisioning pipeline in execution order.
func buildPhases() []provisioning.Phase {
	return []provisioning.Phase{
		provisioning.NewValidationPhase(),
		system.NewIndexPhase(),
		system.NewPackagesPhase(),
		python.NewInstallerPhase(),
		python.NewDependenciesPhase(),
	}
}

// phaseNames returns the display keys for the dashboard, in order.
func phaseNames(phases []provisioning.Phase) []string {
	names := make([]string, 0, len(phases))
	for _, p := range phases {
		names = append(names, p.Name())
	}
	return names
}

// applyPlain runs the pipeline with log output and tool output passed
// straight through to the terminal.
func applyPlain(ctx context.Context, cfg *config.Config, phases []provisioning.Phase) error {
	pctx := provisioning.NewContext(ctx, cfg,
		newSystemManager(cfg, os.Stdout, os.Stderr),
		newPythonManager(cfg, os.Stdout, os.Stderr),
	)

	if err := provisioning.RunPhases(pctx, phases); err != nil {
		return err
	}

	printApplySuccess(cfg, pctx.State)
	return nil
}

// applyTUI runs the pipeline behind the dashboard. Tool output would
// corrupt the alternate screen, so it is captured and replayed on failure.
// The pipeline runs on the context the dashboard hands out, so quitting the
// dashboard cancels it and kills the running tool process.
func applyTUI(ctx context.Context, cfg *config.Config, phases []provisioning.Phase) error {
	var toolOutput bytes.Buffer

	sys := newSystemManager(cfg, &toolOutput, &toolOutput)
	py := newPythonManager(cfg, &toolOutput, &toolOutput)

	var state *provisioning.State
	runFn := func(runCtx context.Context, ch chan<- tui.PhaseMsg) error {
		pctx := provisioning.NewContext(runCtx, cfg, sys, py)
		pctx.Observer = &phaseForwarder{ch: ch}
		state = pctx.State
		return provisioning.RunPhases(pctx, phases)
	}

	if err := tui.RunApplyTUI(ctx, runFn, cfg.ServiceName, cfg.Manifest, phaseNames(phases)); err != nil {
		replayToolOutput(&toolOutput)
		return err
	}

	printApplySuccess(cfg, state)
	return nil
}

// replayToolOutput prints captured tool output after a TUI run failed, so
// the underlying apt/pip diagnostics are not lost with the dashboard.
func replayToolOutput(buf *bytes.Buffer) {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return
	}
	fmt.Fprintln(os.Stderr, "\nTool output:")
	fmt.Fprintln(os.Stderr, out)
}

// checkApplyPrerequisites verifies required client tools are available.
func checkApplyPrerequisites(ctx context.Context, cfg *config.Config) error {
	tools := prerequisites.DefaultTools()
	if cfg.UseSudo {
		tools = append(tools, prerequisites.SudoTools()...)
	}

	results := checkTools(ctx, tools)

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}
	for _, tool := range results.Missing {
		if !tool.Required {
			log.Printf("  Missing optional tool %s (%s)", tool.Name, tool.Description)
		}
	}

	return results.Error()
}

// printApplySuccess outputs the run summary and next steps for the user.
func printApplySuccess(cfg *config.Config, state *provisioning.State) {
	fmt.Printf("\nEnvironment provisioned!\n\n")

	if len(state.AlreadyPresent) > 0 {
		fmt.Printf("  Already present: %s\n", strings.Join(state.AlreadyPresent, ", "))
	}
	fmt.Printf("  System packages: %s\n", strings.Join(cfg.SystemPackages(), ", "))
	if state.InstallerVersionAfter != "" {
		fmt.Printf("  pip:             %s\n", state.InstallerVersionAfter)
	}
	fmt.Printf("  Manifest:        %s\n", cfg.Manifest)

	fmt.Printf("\nThe OCR engine and Python dependencies are ready.\n")
	fmt.Printf("Verify with:\n")
	fmt.Printf("  tesseract --list-langs\n")
	fmt.Printf("  %s -m pip check\n", cfg.PythonBinary)
}

// phaseForwarder adapts pipeline events into dashboard messages. Log lines
// are dropped; the dashboard already shows per-phase status.
type phaseForwarder struct {
	ch chan<- tui.PhaseMsg
}

func (f *phaseForwarder) Printf(string, ...interface{}) {}

func (f *phaseForwarder) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPhaseStarted:
		f.ch <- tui.PhaseMsg{Phase: event.Phase}
	case provisioning.EventPhaseCompleted:
		f.ch <- tui.PhaseMsg{Phase: event.Phase, Done: true}
	// Phase failures surface through the pipeline's returned error, which
	// carries the failing tool's exit status; only the detail is forwarded
	// here so the dashboard quits with the real error.
	case provisioning.EventPhaseFailed:
		f.ch <- tui.PhaseMsg{Phase: event.Phase, Detail: event.Message}
	case provisioning.EventPackageInstalling, provisioning.EventPackageInstalled, provisioning.EventPackagePresent:
		f.ch <- tui.PhaseMsg{Phase: event.Phase, Detail: event.Package}
	}
}

func (f *phaseForwarder) Progress(phase string, current, total int) {
	f.ch <- tui.PhaseMsg{Phase: phase, Detail: fmt.Sprintf("%d/%d", current, total)}
}

func (f *phaseForwarder) WithFields(map[string]string) provisioning.Observer {
	return f
}
