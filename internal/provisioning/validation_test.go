package provisioning

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationPhase_Passes(t *testing.T) {
	ctx, observer := newTestContext()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("fastapi==0.104.1\n"), 0o600))
	ctx.Config.Manifest = manifest

	phase := NewValidationPhase()
	assert.Equal(t, "validation", phase.Name())
	require.NoError(t, phase.Provision(ctx))
	assert.Empty(t, observer.eventsOfType(EventValidationError))
}

func TestValidationPhase_MissingManifestIsWarning(t *testing.T) {
	ctx, observer := newTestContext()
	ctx.Config.Manifest = filepath.Join(t.TempDir(), "absent.txt")

	// The run must continue: earlier steps execute and the dependency step
	// itself reports the missing file.
	require.NoError(t, NewValidationPhase().Provision(ctx))

	warnings := observer.eventsOfType(EventValidationWarning)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "does not exist")
}

func TestValidationPhase_InvalidConfigFails(t *testing.T) {
	ctx, observer := newTestContext()
	ctx.Config.Languages = []string{"Portuguese!"}

	err := NewValidationPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.NotEmpty(t, observer.eventsOfType(EventValidationError))
}

func TestValidationError_Severity(t *testing.T) {
	t.Parallel()
	ve := ValidationError{Field: "manifest", Message: "missing", Severity: "warning"}
	assert.False(t, ve.IsError())
	assert.Equal(t, "[warning] manifest: missing", ve.Error())
}

func TestStepContext_Unbounded(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext()

	stepCtx, cancel := ctx.StepContext(0)
	defer cancel()
	_, hasDeadline := stepCtx.Deadline()
	assert.False(t, hasDeadline)
}

func TestStepContext_Bounded(t *testing.T) {
	t.Parallel()
	ctx := &Context{Context: context.Background()}

	stepCtx, cancel := ctx.StepContext(1)
	defer cancel()
	_, hasDeadline := stepCtx.Deadline()
	assert.True(t, hasDeadline)
}
