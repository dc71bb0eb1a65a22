// Package executor runs query files against the engine and routes their
// results per output spec.
package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/christosgalano/kqlctl/internal/config"
	"github.com/christosgalano/kqlctl/internal/engine"
	"github.com/christosgalano/kqlctl/internal/model"
	"github.com/christosgalano/kqlctl/internal/utils/logger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Executor runs query files and processes their results.
type Executor struct {
	engine engine.Engine
	stdout io.Writer
}

// New creates an executor backed by the given engine, writing console
// results to stdout.
func New(eng engine.Engine) *Executor {
	return &Executor{engine: eng, stdout: os.Stdout}
}

// NewWithOutput creates an executor writing console results to the given
// writer.
func NewWithOutput(eng engine.Engine, out io.Writer) *Executor {
	return &Executor{engine: eng, stdout: out}
}

// Summary aggregates the per-file outcomes of a run.
type Summary struct {
	Succeeded int
	Failed    int
}

// Run executes every discovered file sequentially and tallies the
// outcomes. A single file's failure never aborts the remaining files.
func (e *Executor) Run(ctx context.Context, folder string, files []string, workspace string, cfg *model.Config) Summary {
	runID := uuid.NewString()

	var summary Summary
	for _, file := range files {
		if err := e.RunQuery(ctx, folder, file, workspace, cfg); err != nil {
			logger.Error("Query execution failed",
				zap.String("run_id", runID),
				zap.String("file", file),
				zap.Error(err))
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}

	logger.Info("Execution completed",
		zap.String("run_id", runID),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))
	return summary
}

// RunQuery executes one query file against each of its resolved output
// specs, in declaration order. The first spec that fails fails the whole
// file; later specs are not attempted. Partial per-file output is more
// confusing than an all-or-nothing retry.
func (e *Executor) RunQuery(ctx context.Context, folder, queryFile, workspace string, cfg *model.Config) error {
	queryPath := filepath.Join(folder, queryFile)
	if _, err := os.Stat(queryPath); err != nil {
		return fmt.Errorf("query file not found: %s", queryPath)
	}

	logger.Info("Executing query", zap.String("file", queryPath))

	for _, spec := range config.ResolveOutputs(cfg, queryFile) {
		if spec.Format == model.FormatNone {
			logger.Info("Skipping output", zap.String("file", queryPath), zap.String("format", "none"))
			continue
		}

		if err := e.runSpec(ctx, queryPath, queryFile, workspace, spec); err != nil {
			return err
		}
	}

	return nil
}

func (e *Executor) runSpec(ctx context.Context, queryPath, queryFile, workspace string, spec model.OutputSpec) error {
	result, err := e.engine.Execute(ctx, engine.Request{
		Workspace: workspace,
		QueryPath: queryPath,
		Format:    spec.Format,
		Filter:    cleanFilter(spec.Query),
	})
	if err != nil {
		return fmt.Errorf("error executing query %s: %w", queryPath, err)
	}

	if spec.File == "" {
		e.writeConsole(queryFile, result)
		logger.Info("Results displayed to console", zap.String("file", queryFile))
		return nil
	}

	if dir := filepath.Dir(spec.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(spec.File, []byte(result), 0644); err != nil {
		return fmt.Errorf("failed to write results to %s: %w", spec.File, err)
	}
	logger.Info("Results saved", zap.String("file", spec.File))

	switch spec.Compression {
	case model.CompressionGzip:
		if err := gzipFile(spec.File); err != nil {
			return fmt.Errorf("failed to gzip %s: %w", spec.File, err)
		}
		logger.Info("Compressed results with gzip", zap.String("file", spec.File+".gz"))
	case model.CompressionZip:
		if err := zipFile(spec.File); err != nil {
			return fmt.Errorf("failed to zip %s: %w", spec.File, err)
		}
		logger.Info("Compressed results with zip", zap.String("file", zipPath(spec.File)))
	}

	return nil
}

// writeConsole frames a result with the query identifier and a visual
// separator.
func (e *Executor) writeConsole(queryFile, result string) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintf(e.stdout, "Results for %s\n", queryFile)
	fmt.Fprintln(e.stdout, strings.Repeat("-", 80))
	fmt.Fprintln(e.stdout, result)
	fmt.Fprintln(e.stdout)
}

// cleanFilter collapses embedded newlines and repeated whitespace in a
// filter expression into single spaces before it crosses the engine
// boundary.
func cleanFilter(filter string) string {
	if filter == "" {
		return ""
	}
	return strings.Join(strings.Fields(filter), " ")
}
