package system

import (
	"github.com/boletoscan/ocrenv/internal/provisioning"
)

// PackagesPhase installs the OCR engine and its language data packs.
type PackagesPhase struct{}

// NewPackagesPhase creates the system package installation phase.
func NewPackagesPhase() *PackagesPhase {
	return &PackagesPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *PackagesPhase) Name() string {
	return "system-packages"
}

// Provision implements the provisioning.Phase interface.
//
// The whole package set is installed with a single invocation, matching the
// package manager's own transactional behavior. Per-package presence checks
// beforehand are reporting only and never gate the install.
func (p *PackagesPhase) Provision(ctx *provisioning.Context) error {
	stepCtx, cancel := ctx.StepContext(ctx.Timeouts.PackageInstall)
	defer cancel()

	packages := ctx.Config.SystemPackages()

	for _, pkg := range packages {
		installed, err := ctx.System.IsInstalled(stepCtx, pkg)
		if err == nil && installed {
			provisioning.LogPackagePresent(ctx.Observer, p.Name(), pkg)
			ctx.State.AlreadyPresent = append(ctx.State.AlreadyPresent, pkg)
		} else {
			provisioning.LogPackageInstalling(ctx.Observer, p.Name(), pkg)
		}
	}

	if err := ctx.System.Install(stepCtx, packages...); err != nil {
		return err
	}

	ctx.State.InstalledPackages = packages
	for _, pkg := range packages {
		provisioning.LogPackageInstalled(ctx.Observer, p.Name(), pkg)
	}
	return nil
}
