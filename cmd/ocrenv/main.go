// Package main is the entry point for the ocrenv CLI.
//
// ocrenv provisions the runtime environment for the boleto OCR analysis
// service: it refreshes the system package index, installs the tesseract
// OCR engine with its language data, upgrades pip, and installs the
// Python dependency manifest. Steps run in a fixed order and the run
// aborts on the first failure.
//
// Commands: init, plan, apply, doctor.
//
// For detailed usage information, run:
//
//	ocrenv --help
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boletoscan/ocrenv/cmd/ocrenv/commands"
	"github.com/boletoscan/ocrenv/internal/provisioning"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run failure to the process exit status. When a
// provisioning step failed because its external tool exited nonzero, the
// tool's status is propagated so callers see the same code the failing
// command produced.
func exitCode(err error) int {
	var stepErr *provisioning.StepError
	if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
		return stepErr.ExitCode
	}
	return 1
}
