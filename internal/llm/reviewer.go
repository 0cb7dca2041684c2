package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

const (
	// maxCodeChars bounds how much file content goes into a prompt.
	maxCodeChars = 3000

	// maxStaticContext bounds how many static issues are summarized
	// into the prompt.
	maxStaticContext = 10

	// reviewAttempts is the initial request plus retries on
	// unparseable output.
	reviewAttempts = 3

	reviewMaxTokens = 2000
)

const reviewSystemPrompt = `You are an expert code reviewer. Analyze the provided code changes and:
1. Identify anti-patterns and code smells
2. Suggest improvements for readability and maintainability
3. Point out potential bugs or logic errors
4. Recommend best practices
5. Provide auto-fix suggestions for simple issues

Be concise and actionable. Format your response as JSON with this structure:
{
    "issues": [
        {
            "line": <line_number>,
            "severity": "high|medium|low",
            "category": "anti-pattern|bug|style|performance",
            "message": "Description of the issue",
            "suggestion": "How to fix it",
            "auto_fix": "Code snippet to fix (if applicable)"
        }
    ],
    "overall_feedback": "General comments about the changes"
}`

// Reviewer asks the model to review files and parses the structured
// result out of its free-form answer.
type Reviewer struct {
	completer Completer
	log       *zap.Logger
}

// NewReviewer creates a Reviewer on top of a Completer.
func NewReviewer(completer Completer, log *zap.Logger) *Reviewer {
	return &Reviewer{completer: completer, log: log}
}

type reviewPayload struct {
	Issues          []model.Issue `json:"issues"`
	OverallFeedback string        `json:"overall_feedback"`
}

// ReviewFile reviews one file, feeding the static-analysis findings in
// as context. Unparseable output retries the whole request; after all
// attempts the result degrades to Success false with a diagnostic. It
// never returns an error to the caller.
func (r *Reviewer) ReviewFile(ctx context.Context, path, content string, staticIssues []model.Issue) model.LLMResult {
	req := CompletionRequest{
		System:      reviewSystemPrompt,
		User:        buildReviewPrompt(path, content, staticIssues),
		MaxTokens:   reviewMaxTokens,
		Temperature: reviewTemperature,
	}

	var lastFailure string
	for attempt := 0; attempt < reviewAttempts; attempt++ {
		text, err := r.completer.Complete(ctx, req)
		if err != nil {
			lastFailure = err.Error()
			r.log.Warn("LLM completion failed",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		raw, ok := ExtractJSON(text)
		if !ok {
			lastFailure = "no JSON found in response"
			r.log.Warn("LLM response contained no parseable JSON",
				zap.String("path", path),
				zap.Int("attempt", attempt+1))
			continue
		}

		var payload reviewPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			lastFailure = err.Error()
			r.log.Warn("LLM JSON did not match the review shape",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		return model.LLMResult{
			Issues:          payload.Issues,
			OverallFeedback: payload.OverallFeedback,
			Success:         true,
		}
	}

	return model.LLMResult{
		Issues:          nil,
		OverallFeedback: "LLM analysis failed: " + lastFailure,
		Success:         false,
	}
}

func buildReviewPrompt(path, content string, staticIssues []model.Issue) string {
	if len(content) > maxCodeChars {
		content = content[:maxCodeChars]
	}
	return fmt.Sprintf("File: %s\n\nCode:\n%s\n\nStatic Analysis Issues:\n%s",
		path, content, formatStaticIssues(staticIssues))
}

func formatStaticIssues(issues []model.Issue) string {
	if len(issues) == 0 {
		return "No static analysis issues found."
	}

	if len(issues) > maxStaticContext {
		issues = issues[:maxStaticContext]
	}

	var lines []string
	for _, issue := range issues {
		lines = append(lines, fmt.Sprintf("- Line %d: %s - %s", issue.Line, issue.Category, issue.Message))
	}
	return strings.Join(lines, "\n")
}
