package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

// Functions above this cyclomatic complexity get flagged; above
// radonHighThreshold they are high severity, otherwise medium.
const (
	radonFlagThreshold = 10
	radonHighThreshold = 20
)

type radonBlock struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Lineno     int    `json:"lineno"`
	Complexity int    `json:"complexity"`
}

// runRadon runs radon's cyclomatic-complexity analysis in JSON mode.
func (a *StaticAnalyzer) runRadon(ctx context.Context, path string) []model.Issue {
	out, ok := a.runTool(ctx, "radon", "cc", "-j", path)
	if !ok {
		return nil
	}

	issues, err := parseRadonOutput(out)
	if err != nil {
		a.log.Warn("parsing radon output failed", zap.Error(err))
		return nil
	}
	return issues
}

func parseRadonOutput(out []byte) ([]model.Issue, error) {
	// Radon keys its report by file path.
	var report map[string][]radonBlock
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, err
	}

	var issues []model.Issue
	for _, blocks := range report {
		for _, block := range blocks {
			if block.Complexity <= radonFlagThreshold {
				continue
			}
			sev := model.SeverityMedium
			if block.Complexity > radonHighThreshold {
				sev = model.SeverityHigh
			}
			kind := block.Type
			if kind == "" {
				kind = "function"
			}
			issues = append(issues, model.Issue{
				Line:     block.Lineno,
				Severity: sev,
				Category: "complexity",
				Message:  fmt.Sprintf("High complexity (%d) in %s '%s'", block.Complexity, kind, block.Name),
			})
		}
	}
	return issues, nil
}
