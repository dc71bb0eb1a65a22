package engine

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"go.uber.org/zap"
)

// AzureCLI executes KQL queries through the az CLI against a Log
// Analytics workspace.
type AzureCLI struct {
	// Timeout bounds a single invocation. Zero means no timeout.
	Timeout time.Duration
}

// NewAzureCLI creates an Azure CLI engine with the given per-invocation
// timeout.
func NewAzureCLI(timeout time.Duration) *AzureCLI {
	return &AzureCLI{Timeout: timeout}
}

// Execute runs az monitor log-analytics query and returns the trimmed
// stdout. Failures surface as *ExecError with captured stderr.
func (a *AzureCLI) Execute(ctx context.Context, req Request) (string, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	args := []string{
		"monitor", "log-analytics", "query",
		"-w", req.Workspace,
		"--analytics-query", "@" + req.QueryPath,
		"--output", req.Format.String(),
	}
	if req.Filter != "" {
		args = append(args, "--query", req.Filter)
	}

	logger.Debug("Invoking query engine", zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, "az", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		execErr := &ExecError{
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			execErr.ExitCode = exitErr.ExitCode()
		}
		return "", execErr
	}

	return strings.TrimSpace(stdout.String()), nil
}
