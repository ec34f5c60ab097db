package config

import (
	"os"
	"time"
)

// Timeouts bounds individual provisioning steps.
//
// The zero value means no timeout: by default each step blocks until its
// external tool exits, and only signal-driven cancellation interrupts it.
type Timeouts struct {
	IndexRefresh     time.Duration // system package index refresh
	PackageInstall   time.Duration // system package installation
	InstallerUpgrade time.Duration // pip self-upgrade
	Dependencies     time.Duration // manifest installation
}

// LoadTimeouts loads step timeouts from environment variables.
// Unset or invalid values leave the step unbounded.
//
// Environment variables:
//   - OCRENV_TIMEOUT_INDEX
//   - OCRENV_TIMEOUT_INSTALL
//   - OCRENV_TIMEOUT_PIP_UPGRADE
//   - OCRENV_TIMEOUT_DEPS
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		IndexRefresh:     parseDuration("OCRENV_TIMEOUT_INDEX", 0),
		PackageInstall:   parseDuration("OCRENV_TIMEOUT_INSTALL", 0),
		InstallerUpgrade: parseDuration("OCRENV_TIMEOUT_PIP_UPGRADE", 0),
		Dependencies:     parseDuration("OCRENV_TIMEOUT_DEPS", 0),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
