package apt

import "context"

// Manager defines the interface for managing system packages.
type Manager interface {
	// UpdateIndex refreshes the package index (apt-get update).
	UpdateIndex(ctx context.Context) error

	// Install installs the given packages non-interactively
	// (apt-get install -y). Already-installed packages are a no-op,
	// which keeps the operation idempotent.
	Install(ctx context.Context, packages ...string) error

	// IsInstalled reports whether a package is currently installed.
	IsInstalled(ctx context.Context, pkg string) (bool, error)
}
