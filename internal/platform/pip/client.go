package pip

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// RealClient implements Manager by shelling out to `<python> -m pip`.
type RealClient struct {
	// Python is the interpreter binary, normally python3.
	Python string

	// Stdout and Stderr receive pip's output. They default to the process
	// streams so pip's resolver and download progress stay visible.
	Stdout io.Writer
	Stderr io.Writer
}

// NewRealClient creates a client for the given interpreter.
func NewRealClient(python string) *RealClient {
	return &RealClient{
		Python: python,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// versionPattern matches `pip 23.3.1 from /usr/lib/... (python 3.11)`.
var versionPattern = regexp.MustCompile(`^pip (\S+)`)

// Version implements Manager.
func (c *RealClient) Version(ctx context.Context) (string, error) {
	// #nosec G204 -- interpreter comes from validated configuration
	cmd := exec.CommandContext(ctx, c.Python, "-m", "pip", "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s -m pip --version failed: %w", c.Python, err)
	}

	line := strings.TrimSpace(out.String())
	if m := versionPattern.FindStringSubmatch(line); m != nil {
		return m[1], nil
	}
	return line, nil
}

// SelfUpgrade implements Manager.
func (c *RealClient) SelfUpgrade(ctx context.Context) error {
	cmd := c.command(ctx, "install", "--upgrade", "pip")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip self-upgrade failed: %w", err)
	}
	return nil
}

// InstallRequirements implements Manager.
func (c *RealClient) InstallRequirements(ctx context.Context, path string) error {
	cmd := c.command(ctx, "install", "-r", path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install -r %s failed: %w", path, err)
	}
	return nil
}

func (c *RealClient) command(ctx context.Context, args ...string) *exec.Cmd {
	args = append([]string{"-m", "pip"}, args...)
	// #nosec G204 -- interpreter and arguments come from validated configuration
	cmd := exec.CommandContext(ctx, c.Python, args...)
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
