// Package config defines the ocrenv runtime configuration.
//
// Configuration is optional: with no ocrenv.yaml present, defaults reproduce
// the canonical provisioning sequence (tesseract-ocr with Portuguese data,
// pip self-upgrade, requirements.txt install) so a bare `ocrenv apply` needs
// no flags or files beyond the manifest itself.
package config
