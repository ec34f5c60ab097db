package python

import (
	"github.com/boletoscan/ocrenv/internal/provisioning"
)

// InstallerPhase upgrades the Python package installer to its latest release.
type InstallerPhase struct{}

// NewInstallerPhase creates the installer upgrade phase.
func NewInstallerPhase() *InstallerPhase {
	return &InstallerPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *InstallerPhase) Name() string {
	return "installer-upgrade"
}

// Provision implements the provisioning.Phase interface.
//
// Version capture before and after is best effort; only the upgrade itself
// can fail the phase.
func (p *InstallerPhase) Provision(ctx *provisioning.Context) error {
	if !ctx.Config.ShouldUpgradeInstaller() {
		ctx.Observer.Printf("[%s] skipped (disabled in config)", p.Name())
		return nil
	}

	stepCtx, cancel := ctx.StepContext(ctx.Timeouts.InstallerUpgrade)
	defer cancel()

	if version, err := ctx.Python.Version(stepCtx); err == nil {
		ctx.State.InstallerVersionBefore = version
	}

	if err := ctx.Python.SelfUpgrade(stepCtx); err != nil {
		return err
	}

	if version, err := ctx.Python.Version(stepCtx); err == nil {
		ctx.State.InstallerVersionAfter = version
		if before := ctx.State.InstallerVersionBefore; before != "" && before != version {
			ctx.Observer.Printf("[%s] pip upgraded %s -> %s", p.Name(), before, version)
		}
	}

	return nil
}
