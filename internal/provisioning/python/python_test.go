package python

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boletoscan/ocrenv/internal/config"
	"github.com/boletoscan/ocrenv/internal/provisioning"
)

// fakePipClient implements pip.Manager for tests.
type fakePipClient struct {
	versions     []string // successive Version() results
	versionErr   error
	upgradeErr   error
	installErr   error
	upgradeCalls int
	installPaths []string
}

func (f *fakePipClient) Version(_ context.Context) (string, error) {
	if f.versionErr != nil {
		return "", f.versionErr
	}
	if len(f.versions) == 0 {
		return "", fmt.Errorf("no version configured")
	}
	v := f.versions[0]
	if len(f.versions) > 1 {
		f.versions = f.versions[1:]
	}
	return v, nil
}

func (f *fakePipClient) SelfUpgrade(_ context.Context) error {
	f.upgradeCalls++
	return f.upgradeErr
}

func (f *fakePipClient) InstallRequirements(_ context.Context, path string) error {
	f.installPaths = append(f.installPaths, path)
	return f.installErr
}

type nopObserver struct{}

func (nopObserver) Printf(string, ...interface{})                            {}
func (nopObserver) Event(provisioning.Event)                                 {}
func (nopObserver) Progress(string, int, int)                                {}
func (nopObserver) WithFields(map[string]string) provisioning.Observer       { return nopObserver{} }

func newTestContext(client *fakePipClient) *provisioning.Context {
	return &provisioning.Context{
		Context:  context.Background(),
		Config:   config.Default(),
		State:    provisioning.NewState(),
		Python:   client,
		Observer: nopObserver{},
		Timeouts: &config.Timeouts{},
	}
}

func TestInstallerPhase_UpgradesAndRecordsVersions(t *testing.T) {
	t.Parallel()
	client := &fakePipClient{versions: []string{"23.0", "24.0"}}
	ctx := newTestContext(client)

	phase := NewInstallerPhase()
	assert.Equal(t, "installer-upgrade", phase.Name())

	require.NoError(t, phase.Provision(ctx))
	assert.Equal(t, 1, client.upgradeCalls)
	assert.Equal(t, "23.0", ctx.State.InstallerVersionBefore)
	assert.Equal(t, "24.0", ctx.State.InstallerVersionAfter)
}

func TestInstallerPhase_VersionProbeFailureIsNotFatal(t *testing.T) {
	t.Parallel()
	client := &fakePipClient{versionErr: fmt.Errorf("pip module missing")}
	ctx := newTestContext(client)

	require.NoError(t, NewInstallerPhase().Provision(ctx))
	assert.Equal(t, 1, client.upgradeCalls)
	assert.Empty(t, ctx.State.InstallerVersionBefore)
}

func TestInstallerPhase_UpgradeFailure(t *testing.T) {
	t.Parallel()
	client := &fakePipClient{versions: []string{"23.0"}, upgradeErr: fmt.Errorf("no network")}
	ctx := newTestContext(client)

	err := NewInstallerPhase().Provision(ctx)
	require.Error(t, err)
	assert.Empty(t, ctx.State.InstallerVersionAfter)
}

func TestInstallerPhase_DisabledInConfig(t *testing.T) {
	t.Parallel()
	disabled := false
	client := &fakePipClient{}
	ctx := newTestContext(client)
	ctx.Config.UpgradeInstaller = &disabled

	require.NoError(t, NewInstallerPhase().Provision(ctx))
	assert.Zero(t, client.upgradeCalls)
}

func TestDependenciesPhase_InstallsManifest(t *testing.T) {
	t.Parallel()
	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("fastapi==0.104.1\n"), 0o600))

	client := &fakePipClient{}
	ctx := newTestContext(client)
	ctx.Config.Manifest = manifest

	phase := NewDependenciesPhase()
	assert.Equal(t, "dependencies", phase.Name())

	require.NoError(t, phase.Provision(ctx))
	assert.Equal(t, []string{manifest}, client.installPaths)
	assert.True(t, ctx.State.RequirementsInstalled)
}

func TestDependenciesPhase_MissingManifest(t *testing.T) {
	t.Parallel()
	client := &fakePipClient{}
	ctx := newTestContext(client)
	ctx.Config.Manifest = filepath.Join(t.TempDir(), "absent.txt")

	err := NewDependenciesPhase().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency manifest")
	// pip is never invoked when the manifest is missing.
	assert.Empty(t, client.installPaths)
	assert.False(t, ctx.State.RequirementsInstalled)
}

func TestDependenciesPhase_InstallFailure(t *testing.T) {
	t.Parallel()
	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("fastapi==0.104.1\n"), 0o600))

	client := &fakePipClient{installErr: fmt.Errorf("resolution impossible")}
	ctx := newTestContext(client)
	ctx.Config.Manifest = manifest

	err := NewDependenciesPhase().Provision(ctx)
	require.Error(t, err)
	assert.False(t, ctx.State.RequirementsInstalled)
}
