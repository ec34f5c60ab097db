package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunApplyTUI wraps a provisioning run with a Bubble Tea TUI.
// runFn executes the pipeline, sending phase updates on the channel; its
// returned error decides the overall outcome. Quitting the dashboard before
// the run finishes cancels runFn's context, which terminates any in-flight
// tool process, and reports the run as interrupted.
func RunApplyTUI(
	ctx context.Context,
	runFn func(ctx context.Context, ch chan<- PhaseMsg) error,
	serviceName, manifest string,
	phaseNames []string,
) error {
	m := NewApplyModel(serviceName, manifest, phaseNames)

	p := tea.NewProgram(m)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Run the pipeline in a background goroutine; the TUI owns the terminal.
	done := make(chan error, 1)
	go func() {
		ch := make(chan PhaseMsg, 10)
		errc := make(chan error, 1)

		go func() {
			defer close(ch)
			errc <- runFn(runCtx, ch)
		}()

		for msg := range ch {
			p.Send(msg)
		}

		err := <-errc
		done <- err
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("TUI error: %w", err)
	}

	fm, ok := finalModel.(Model)
	if !ok {
		cancel()
		<-done
		return fmt.Errorf("unexpected TUI model type %T", finalModel)
	}

	// The program may have quit before the pipeline finished (the user
	// pressed q). Cancel the run and wait for it to wind down before
	// deciding the outcome.
	cancel()
	return runOutcome(fm, <-done)
}

// runOutcome maps the final dashboard model and the pipeline's result to the
// command's error. A model that is neither done nor failed means the user
// quit mid-run; that must not be reported as success.
func runOutcome(m Model, runErr error) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Done || m.AllDone {
		return nil
	}
	if runErr != nil {
		return fmt.Errorf("provisioning interrupted: %w", runErr)
	}
	// The pipeline completed cleanly in the instant between the quit and
	// the cancellation; nothing was cut short.
	return nil
}
