package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

const autoFixMaxTokens = 1000

// GenerateAutoFix asks the model for a minimal unified-diff fix for one
// issue. Failure yields a diagnostic string, never an error.
func (r *Reviewer) GenerateAutoFix(ctx context.Context, code string, issue model.Issue) string {
	prompt := fmt.Sprintf(`Given this code issue:
Line: %d
Issue: %s

Original code:
%s

Generate a unified diff format fix. Be precise and minimal.`, issue.Line, issue.Message, code)

	text, err := r.completer.Complete(ctx, CompletionRequest{
		User:        prompt,
		MaxTokens:   autoFixMaxTokens,
		Temperature: reviewTemperature,
	})
	if err != nil {
		r.log.Warn("auto-fix generation failed", zap.Error(err))
		return "Auto-fix generation failed: " + err.Error()
	}
	return text
}
