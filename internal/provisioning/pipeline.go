package provisioning

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// StepError reports a failed provisioning phase. ExitCode carries the failing
// external tool's exit status so the process can propagate it.
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// exitCodeOf extracts the exit status from an external tool failure.
// Failures without an exit status (missing binary, cancellation) map to 1.
func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

// RunPhases executes all provisioning phases sequentially.
//
// Any phase failure aborts the run immediately; later phases do not execute.
// The returned error is a *StepError naming the failed phase.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning run %s with %d phases...", ctx.State.RunID, len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()

		LogPhaseStart(ctx.Observer, phase.Name())
		// Progress gets the bare phase name; observers key on it.
		ctx.Observer.Progress(phase.Name(), i, len(phases))

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			return &StepError{
				Step:     phase.Name(),
				ExitCode: exitCodeOf(err),
				Err:      fmt.Errorf("%s phase failed: %w", phase.Name(), err),
			}
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
