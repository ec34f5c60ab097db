// Package python provisions the Python environment: it upgrades the package
// installer and installs every dependency from the manifest.
//
// The manifest's contents are pip's concern; the dependency phase only checks
// that the file exists before handing it over, so a missing manifest fails
// this step and this step alone.
package python
