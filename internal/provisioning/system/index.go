package system

import (
	"time"

	"github.com/boletoscan/ocrenv/internal/provisioning"
)

// IndexPhase refreshes the system package index.
type IndexPhase struct{}

// NewIndexPhase creates the package index refresh phase.
func NewIndexPhase() *IndexPhase {
	return &IndexPhase{}
}

// Name implements the provisioning.Phase interface.
func (p *IndexPhase) Name() string {
	return "package-index"
}

// Provision implements the provisioning.Phase interface.
func (p *IndexPhase) Provision(ctx *provisioning.Context) error {
	stepCtx, cancel := ctx.StepContext(ctx.Timeouts.IndexRefresh)
	defer cancel()

	if err := ctx.System.UpdateIndex(stepCtx); err != nil {
		return err
	}

	ctx.State.IndexRefreshedAt = time.Now()
	return nil
}
