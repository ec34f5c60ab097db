// Package apt wraps the Debian system package manager.
//
// The package manager is treated as an opaque collaborator: ocrenv sequences
// invocations and checks exit status, and the tool's own stdout/stderr are
// streamed through unchanged so its diagnostics reach the operator directly.
package apt
