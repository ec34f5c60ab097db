// Package prerequisites provides utilities for checking the external tools
// the provisioning sequence shells out to.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Tool represents an external tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// VersionArgs invokes the tool's version output, e.g. ["--version"].
	VersionArgs []string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// DefaultTools returns the tools every provisioning run needs.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "apt-get",
			VersionArgs: []string{"--version"},
			Required:    true,
			Description: "Refreshes the package index and installs the OCR engine",
		},
		{
			Name:        "python3",
			VersionArgs: []string{"--version"},
			Required:    true,
			Description: "Runs pip for the installer upgrade and dependency install",
		},
		{
			Name:        "dpkg-query",
			VersionArgs: []string{"--version"},
			Required:    false,
			Description: "Used to report packages that are already installed",
		},
	}
}

// PostProvisionTools returns tools expected only after a successful run.
func PostProvisionTools() []Tool {
	return []Tool{
		{
			Name:        "tesseract",
			VersionArgs: []string{"--version"},
			Required:    false,
			Description: "The OCR engine installed by the system-packages step",
		},
	}
}

// SudoTools returns the tools needed when sudo mode is configured.
func SudoTools() []Tool {
	return []Tool{
		{
			Name:        "sudo",
			VersionArgs: []string{"--version"},
			Required:    true,
			Description: "Prefixes system package manager invocations",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.Description))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available. Version probes run
// concurrently; result order matches the input order.
func Check(ctx context.Context, tools []Tool) *CheckResults {
	results := &CheckResults{
		Results: make([]CheckResult, len(tools)),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for i, tool := range tools {
		i, tool := i, tool
		g.Go(func() error {
			result := CheckResult{Tool: tool}

			path, err := exec.LookPath(tool.Name)
			if err == nil {
				result.Found = true
				result.Path = path
				result.Version = toolVersion(ctx, tool)
			}

			mu.Lock()
			defer mu.Unlock()
			results.Results[i] = result
			if !result.Found {
				results.Missing = append(results.Missing, tool)
			}
			return nil
		})
	}

	// Goroutines only record results, they never fail the group.
	_ = g.Wait()
	return results
}

// CheckDefault checks the default required tools.
func CheckDefault(ctx context.Context) *CheckResults {
	return Check(ctx, DefaultTools())
}

// toolVersion fetches the first line of the tool's version output.
// Returns empty string if the probe fails.
func toolVersion(ctx context.Context, tool Tool) string {
	if len(tool.VersionArgs) == 0 {
		return ""
	}

	// #nosec G204 - name comes from trusted Tool definitions, not user input
	cmd := exec.CommandContext(ctx, tool.Name, tool.VersionArgs...)
	output, err := cmd.Output()
	if err != nil {
		return ""
	}

	lines := strings.SplitN(string(output), "\n", 2)
	return strings.TrimSpace(lines[0])
}
