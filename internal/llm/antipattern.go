package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

const (
	antiPatternMaxTokens = 1500
	antiPatternMaxChars  = 2000
)

// AntiPattern is one detected anti-pattern.
type AntiPattern struct {
	Name        string `json:"name"`
	Line        int    `json:"line"`
	Problem     string `json:"problem"`
	Alternative string `json:"alternative"`
}

// DetectAntiPatterns asks the model for anti-patterns in a code
// fragment. The model sometimes answers with a bare array and
// sometimes with an object keyed "patterns"; both are accepted. Any
// other shape, or any failure, yields an empty list.
func (r *Reviewer) DetectAntiPatterns(ctx context.Context, code string) []AntiPattern {
	if len(code) > antiPatternMaxChars {
		code = code[:antiPatternMaxChars]
	}

	prompt := fmt.Sprintf(`Analyze this code for anti-patterns:

%s

List any anti-patterns found with:
1. Pattern name ("name")
2. Location ("line", line number if possible)
3. Why it's problematic ("problem")
4. Recommended alternative ("alternative")

Format as JSON array.`, code)

	text, err := r.completer.Complete(ctx, CompletionRequest{
		User:        prompt,
		MaxTokens:   antiPatternMaxTokens,
		Temperature: reviewTemperature,
	})
	if err != nil {
		r.log.Warn("anti-pattern detection failed", zap.Error(err))
		return nil
	}

	raw, ok := ExtractJSON(text)
	if !ok {
		return nil
	}
	return parseAntiPatterns(raw)
}

func parseAntiPatterns(raw json.RawMessage) []AntiPattern {
	var list []AntiPattern
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var wrapped struct {
		Patterns []AntiPattern `json:"patterns"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Patterns
	}

	return nil
}
