package python

import (
	"fmt"
	"os"

	"github.com/boletoscan/ocrenv/internal/provisioning"
)

// DependenciesPhase installs every dependency listed in the manifest.
type DependenciesPhase struct{}

// NewDependenciesPhase creates the manifest installation phase.
func NewDependenciesPhase() *DependenciesPhase {
	return &DependenciesPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *DependenciesPhase) Name() string {
	return "dependencies"
}

// Provision implements the provisioning.Phase interface.
func (p *DependenciesPhase) Provision(ctx *provisioning.Context) error {
	manifest := ctx.Config.Manifest
	if _, err := os.Stat(manifest); err != nil {
		return fmt.Errorf("dependency manifest %s: %w", manifest, err)
	}

	stepCtx, cancel := ctx.StepContext(ctx.Timeouts.Dependencies)
	defer cancel()

	if err := ctx.Python.InstallRequirements(stepCtx, manifest); err != nil {
		return err
	}

	ctx.State.RequirementsInstalled = true
	return nil
}
