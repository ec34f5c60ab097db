package pip

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakePython writes an executable script standing in for the interpreter.
func writeFakePython(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "fake-python")
	script := "#!/bin/sh\n" + body
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) // #nosec G306
	return path
}

func TestRealClient_Version(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	python := writeFakePython(t, dir,
		`echo "pip 23.3.1 from /usr/lib/python3/dist-packages/pip (python 3.11)"`+"\n")

	client := NewRealClient(python)
	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "23.3.1", version)
}

func TestRealClient_Version_UnparsableOutput(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	python := writeFakePython(t, dir, `echo "something unexpected"`+"\n")

	client := NewRealClient(python)
	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "something unexpected", version)
}

func TestRealClient_SelfUpgrade(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logFile := filepath.Join(dir, "calls.log")
	python := writeFakePython(t, dir, `echo "$@" >> `+logFile+"\n")

	client := NewRealClient(python)
	client.Stdout = &bytes.Buffer{}
	client.Stderr = &bytes.Buffer{}

	require.NoError(t, client.SelfUpgrade(context.Background()))

	data, err := os.ReadFile(logFile) // #nosec G304
	require.NoError(t, err)
	assert.Contains(t, string(data), "-m pip install --upgrade pip")
}

func TestRealClient_InstallRequirements(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logFile := filepath.Join(dir, "calls.log")
	python := writeFakePython(t, dir, `echo "$@" >> `+logFile+"\n")

	client := NewRealClient(python)
	client.Stdout = &bytes.Buffer{}
	client.Stderr = &bytes.Buffer{}

	require.NoError(t, client.InstallRequirements(context.Background(), "requirements.txt"))

	data, err := os.ReadFile(logFile) // #nosec G304
	require.NoError(t, err)
	assert.Contains(t, string(data), "-m pip install -r requirements.txt")
}

func TestRealClient_InstallRequirements_Failure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	python := writeFakePython(t, dir, "exit 1\n")

	client := NewRealClient(python)
	client.Stdout = &bytes.Buffer{}
	client.Stderr = &bytes.Buffer{}

	err := client.InstallRequirements(context.Background(), "missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip install -r missing.txt failed")
}
