// Package pip wraps the Python package installer, invoked as `python -m pip`
// so the upgrade in step 3 and the install in step 4 target the same
// interpreter environment.
package pip
