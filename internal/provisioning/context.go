package provisioning

import (
	"context"
	"time"

	"github.com/boletoscan/ocrenv/internal/config"
	"github.com/boletoscan/ocrenv/internal/platform/apt"
	"github.com/boletoscan/ocrenv/internal/platform/pip"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	System   apt.Manager
	Python   pip.Manager
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	system apt.Manager,
	python pip.Manager,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		System:   system,
		Python:   python,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}

// StepContext derives a context for one step, bounded by d when d > 0.
// With d == 0 the step blocks until its external tool exits, which is the
// default behavior.
func (c *Context) StepContext(d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(c.Context, d)
	}
	return context.WithCancel(c.Context)
}
