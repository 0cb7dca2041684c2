package analyzer

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

// pylint message types mapped onto our severities. Unknown types fall
// back to medium.
var pylintSeverity = map[string]model.Severity{
	"error":      model.SeverityHigh,
	"warning":    model.SeverityMedium,
	"refactor":   model.SeverityLow,
	"convention": model.SeverityLow,
	"info":       model.SeverityInfo,
}

type pylintMessage struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Symbol  string `json:"symbol"`
}

// runPylint runs pylint in JSON mode for style issues. Docstring checks
// are disabled; they are noise at review granularity.
func (a *StaticAnalyzer) runPylint(ctx context.Context, path string) []model.Issue {
	out, ok := a.runTool(ctx, "pylint", "--output-format=json", "--disable=C0114,C0115,C0116", path)
	if !ok {
		return nil
	}

	issues, err := parsePylintOutput(out)
	if err != nil {
		a.log.Warn("parsing pylint output failed", zap.Error(err))
		return nil
	}
	return issues
}

func parsePylintOutput(out []byte) ([]model.Issue, error) {
	var messages []pylintMessage
	if err := json.Unmarshal(out, &messages); err != nil {
		return nil, err
	}

	var issues []model.Issue
	for _, msg := range messages {
		if msg.Line == 0 {
			continue
		}
		sev, ok := pylintSeverity[msg.Type]
		if !ok {
			sev = model.SeverityMedium
		}
		issues = append(issues, model.Issue{
			Line:     msg.Line,
			Severity: sev,
			Category: "style",
			Message:  msg.Message,
		})
	}
	return issues, nil
}
