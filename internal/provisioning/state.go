package provisioning

import (
	"time"

	"github.com/google/uuid"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes, mirroring the linear
// run sequence: index refreshed, system packages installed, installer
// upgraded, dependencies installed.
type State struct {
	// RunID uniquely identifies this provisioning run in event output.
	RunID string

	// System package results
	IndexRefreshedAt  time.Time // when the package index refresh completed
	InstalledPackages []string  // system packages ensured by this run
	AlreadyPresent    []string  // system packages that were already installed

	// Python environment results
	InstallerVersionBefore string // pip version before the upgrade (best effort)
	InstallerVersionAfter  string // pip version after the upgrade (best effort)
	RequirementsInstalled  bool   // manifest installation completed
}

// NewState creates an empty provisioning state with a fresh run ID.
func NewState() *State {
	return &State{
		RunID: uuid.NewString(),
	}
}

// IndexRefreshed reports whether the package index refresh step completed.
func (s *State) IndexRefreshed() bool {
	return !s.IndexRefreshedAt.IsZero()
}
