// Package system provisions the host's system packages: it refreshes the
// package index and installs the OCR engine with its language data packs.
//
// Both phases delegate to the configured apt client and are idempotent;
// re-running against an already provisioned host changes nothing.
package system
