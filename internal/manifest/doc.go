// Package manifest parses pip-style dependency manifests (requirements.txt).
//
// The parser exists for diagnostics only: the plan and doctor commands use it
// to summarize and sanity-check the manifest before a run. Installation
// always hands the file to pip verbatim, so pip's own resolution remains the
// source of truth for what ends up installed.
package manifest
