package apt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// RealClient implements Manager by shelling out to the system package manager.
type RealClient struct {
	// Binary is the package manager binary, normally apt-get.
	Binary string

	// UseSudo prefixes every invocation with sudo.
	UseSudo bool

	// Stdout and Stderr receive the tool's output. They default to the
	// process streams so apt's own diagnostics stay visible.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRealClient creates a client for the given binary.
func NewRealClient(binary string, useSudo bool) *RealClient {
	return &RealClient{
		Binary:  binary,
		UseSudo: useSudo,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// UpdateIndex implements Manager.
func (c *RealClient) UpdateIndex(ctx context.Context) error {
	cmd := c.command(ctx, "update")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s update failed: %w", c.Binary, err)
	}
	return nil
}

// Install implements Manager.
func (c *RealClient) Install(ctx context.Context, packages ...string) error {
	if len(packages) == 0 {
		return nil
	}

	args := append([]string{"install", "-y"}, packages...)
	cmd := c.command(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install failed for %s: %w", c.Binary, strings.Join(packages, " "), err)
	}
	return nil
}

// IsInstalled implements Manager using dpkg-query.
func (c *RealClient) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	// #nosec G204 -- pkg comes from validated configuration
	cmd := exec.CommandContext(ctx, "dpkg-query", "-W", "-f=${Status}", pkg)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		// dpkg-query exits 1 for unknown packages; that is a clean "not
		// installed", not a failure.
		if _, ok := exitError(err); ok {
			return false, nil
		}
		return false, fmt.Errorf("dpkg-query failed for %s: %w", pkg, err)
	}
	return strings.Contains(out.String(), "install ok installed"), nil
}

const nonInteractiveEnv = "DEBIAN_FRONTEND=noninteractive"

// command builds the package manager invocation, applying the sudo prefix and
// forcing non-interactive frontend behavior.
func (c *RealClient) command(ctx context.Context, args ...string) *exec.Cmd {
	name := c.Binary
	if c.UseSudo {
		// sudo's env_reset strips DEBIAN_FRONTEND from the inherited
		// environment, so it travels on the command line instead.
		args = append([]string{nonInteractiveEnv, c.Binary}, args...)
		name = "sudo"
	}

	// #nosec G204 -- binary and arguments come from validated configuration
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), nonInteractiveEnv)
	cmd.Stdout = c.stdout()
	cmd.Stderr = c.stderr()
	return cmd
}

func (c *RealClient) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *RealClient) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}

// exitError unwraps an *exec.ExitError from err, if present.
func exitError(err error) (*exec.ExitError, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}
