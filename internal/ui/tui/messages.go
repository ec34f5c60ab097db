// Package tui provides a Bubble Tea-based terminal UI for provisioning runs.
package tui

// PhaseMsg reports progress of a provisioning phase.
type PhaseMsg struct {
	Phase  string // phase key, e.g. "package-index"
	Done   bool
	Detail string // optional one-line detail shown next to the phase
	Err    error
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
