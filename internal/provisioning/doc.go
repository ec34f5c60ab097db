// Package provisioning provides shared types, interfaces, and orchestration
// for environment provisioning.
//
// # Subpackages
//
//   - system/ — package index refresh and OCR engine installation
//   - python/ — installer self-upgrade and manifest installation
//
// # Core Types
//
// Context carries configuration, state, package manager clients, and the
// observer. Phase defines a provisioning step with Name() and Provision()
// methods. RunPhases executes phases strictly in order, aborting on the first
// failure; there is no retry and no rollback, re-running the sequence is the
// recovery path. State accumulates results from each phase.
package provisioning
