// Package engine defines the contract with the external query engine.
package engine

import (
	"context"
	"fmt"

	"github.com/christosgalano/kqlctl/internal/model"
)

// Request describes one engine invocation: a query file executed against
// a workspace with a requested output format and an optional result
// filter expression.
type Request struct {
	Workspace string
	QueryPath string
	Format    model.OutputFormat
	Filter    string
}

// Engine executes a query request and returns the textual result.
type Engine interface {
	Execute(ctx context.Context, req Request) (string, error)
}

// ExecError carries the exit detail of a failed engine invocation.
type ExecError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("engine invocation failed (exit %d): %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("engine invocation failed: %v", e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
