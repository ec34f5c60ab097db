package pip

import "context"

// Manager defines the interface for managing the Python environment.
type Manager interface {
	// Version returns the installer's version string, e.g. "23.3.1".
	Version(ctx context.Context) (string, error)

	// SelfUpgrade upgrades the installer to its latest release
	// (pip install --upgrade pip). Re-running on an up-to-date installer
	// is a no-op.
	SelfUpgrade(ctx context.Context) error

	// InstallRequirements installs every dependency listed in the manifest
	// at path (pip install -r <path>).
	InstallRequirements(ctx context.Context, path string) error
}
