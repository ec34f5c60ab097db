package provisioning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase implements the Phase interface for pre-flight validation.
//
// It only inspects local configuration and the filesystem. A missing manifest
// is a warning, not an error: the earlier steps still run and the dependency
// step itself fails on it.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	results := vp.validate(ctx)

	var errs []string
	for _, result := range results {
		if result.IsError() {
			ctx.Observer.Event(Event{
				Type:    EventValidationError,
				Phase:   vp.Name(),
				Message: result.Error(),
			})
			errs = append(errs, result.Error())
		} else {
			ctx.Observer.Event(Event{
				Type:    EventValidationWarning,
				Phase:   vp.Name(),
				Message: result.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// validate collects validation results without side effects.
func (vp *ValidationPhase) validate(ctx *Context) []ValidationError {
	var results []ValidationError

	if err := ctx.Config.Validate(); err != nil {
		results = append(results, ValidationError{
			Field:    "config",
			Message:  err.Error(),
			Severity: "error",
		})
	}

	if len(ctx.Config.SystemPackages()) == 0 {
		results = append(results, ValidationError{
			Field:    "languages",
			Message:  "no system packages to install",
			Severity: "error",
		})
	}

	if _, err := os.Stat(ctx.Config.Manifest); errors.Is(err, fs.ErrNotExist) {
		results = append(results, ValidationError{
			Field:    "manifest",
			Message:  fmt.Sprintf("%s does not exist; the dependency step will fail", ctx.Config.Manifest),
			Severity: "warning",
		})
	}

	return results
}
