// Package analyzer runs external static-analysis tools over file
// content and normalizes their output into the common issue shape.
package analyzer

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

const toolTimeout = 30 * time.Second

// StaticAnalyzer invokes pylint, bandit and radon per file. Each tool
// fails independently: a missing binary, a timeout, or malformed output
// empties that tool's list and the other two proceed.
type StaticAnalyzer struct {
	timeout time.Duration
	log     *zap.Logger
}

// NewStaticAnalyzer creates a StaticAnalyzer with the default per-tool timeout.
func NewStaticAnalyzer(log *zap.Logger) *StaticAnalyzer {
	return &StaticAnalyzer{timeout: toolTimeout, log: log}
}

// AnalyzeFile runs all tools against the given content. Non-Python
// paths short-circuit to empty results; the tools are Python-specific.
func (a *StaticAnalyzer) AnalyzeFile(ctx context.Context, path, content string) model.StaticResults {
	var results model.StaticResults

	if !strings.HasSuffix(path, ".py") {
		return results
	}

	tmpPath, cleanup, err := writeTempFile(content)
	if err != nil {
		a.log.Warn("creating temp file for static analysis failed",
			zap.String("path", path),
			zap.Error(err))
		return results
	}
	defer cleanup()

	results.StyleIssues = a.runPylint(ctx, tmpPath)
	results.SecurityIssues = a.runBandit(ctx, tmpPath)
	results.ComplexityIssues = a.runRadon(ctx, tmpPath)

	results.Summary = model.StaticSummary{
		TotalIssues:     len(results.StyleIssues) + len(results.SecurityIssues) + len(results.ComplexityIssues),
		StyleCount:      len(results.StyleIssues),
		SecurityCount:   len(results.SecurityIssues),
		ComplexityCount: len(results.ComplexityIssues),
	}

	return results
}

// writeTempFile materializes content to a transient .py file. The
// returned cleanup always removes it, on every exit path.
func writeTempFile(content string) (string, func(), error) {
	tmp, err := os.CreateTemp("", "codex-*.py")
	if err != nil {
		return "", nil, err
	}

	path := tmp.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}

	return path, cleanup, nil
}

// runTool executes a tool with a bounded timeout and returns its
// stdout. Non-zero exit with output is not an error: the lint tools
// exit non-zero whenever they find issues.
func (a *StaticAnalyzer) runTool(ctx context.Context, name string, args ...string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if ctx.Err() != nil {
		a.log.Warn("static analysis tool timed out", zap.String("tool", name))
		return nil, false
	}
	if err != nil && len(out) == 0 {
		a.log.Debug("static analysis tool unavailable or failed",
			zap.String("tool", name),
			zap.Error(err))
		return nil, false
	}
	return out, true
}
