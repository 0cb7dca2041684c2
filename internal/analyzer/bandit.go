package analyzer

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

type banditReport struct {
	Results []banditResult `json:"results"`
}

type banditResult struct {
	LineNumber int    `json:"line_number"`
	IssueText  string `json:"issue_text"`
	Severity   string `json:"issue_severity"`
}

// runBandit runs bandit in JSON mode for security issues. Bandit's own
// severity strings (LOW/MEDIUM/HIGH) pass through lower-cased.
func (a *StaticAnalyzer) runBandit(ctx context.Context, path string) []model.Issue {
	out, ok := a.runTool(ctx, "bandit", "-f", "json", path)
	if !ok {
		return nil
	}

	issues, err := parseBanditOutput(out)
	if err != nil {
		a.log.Warn("parsing bandit output failed", zap.Error(err))
		return nil
	}
	return issues
}

func parseBanditOutput(out []byte) ([]model.Issue, error) {
	var report banditReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, err
	}

	var issues []model.Issue
	for _, res := range report.Results {
		issues = append(issues, model.Issue{
			Line:     res.LineNumber,
			Severity: model.ParseSeverity(res.Severity),
			Category: "security",
			Message:  res.IssueText,
		})
	}
	return issues, nil
}
