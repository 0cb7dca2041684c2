package comment

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/codex/internal/analyzer"
	"github.com/sprite-ai/codex/internal/model"
)

var severityMarkers = map[model.Severity]string{
	model.SeverityHigh:   "🔴 [HIGH]",
	model.SeverityMedium: "🟡 [MEDIUM]",
	model.SeverityLow:    "🟢 [LOW]",
	model.SeverityInfo:   "🔵 [INFO]",
}

const commentFooter = "*🤖 Generated by CODEX AI Code Review Assistant*"

// formatInlineComment renders one issue as an inline comment body.
func formatInlineComment(path string, issue model.Issue, includeAutoFix bool) string {
	marker, ok := severityMarkers[issue.Severity]
	if !ok {
		marker = "⚠️ [ISSUE]"
	}

	category := issue.Category
	if category == "" {
		category = "issue"
	}
	message := issue.Message
	if message == "" {
		message = "No description"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s**\n\n", marker, strings.ToUpper(category))
	fmt.Fprintf(&b, "%s\n\n", message)

	if issue.Suggestion != "" {
		fmt.Fprintf(&b, "**💡 Suggestion:** %s\n\n", issue.Suggestion)
	}
	if issue.AutoFix != "" && includeAutoFix {
		fmt.Fprintf(&b, "**🔧 Auto-fix:**\n```%s\n%s\n```\n\n", analyzer.LanguageTag(path), issue.AutoFix)
	}

	b.WriteString(commentFooter)
	return b.String()
}

// renderSummary builds the top-level review body.
func renderSummary(pr *model.PullRequestContext, results []model.FileReviewResult) string {
	totalIssues := 0
	for _, r := range results {
		totalIssues += r.Summary.TotalIssues
	}

	var b strings.Builder
	b.WriteString("## 🤖 CODEX AI Code Review\n\n")
	fmt.Fprintf(&b, "**PR:** %s\n", pr.Title)
	fmt.Fprintf(&b, "**Author:** @%s\n", pr.Author)
	fmt.Fprintf(&b, "**Files Reviewed:** %d\n", len(results))
	fmt.Fprintf(&b, "**Total Issues Found:** %d\n\n", totalIssues)

	if totalIssues > 0 {
		b.WriteString("### 📊 Summary by File\n\n")
		for _, r := range results {
			if r.Summary.TotalIssues > 0 {
				fmt.Fprintf(&b, "**%s**: %d issues found\n", r.Path, r.Summary.TotalIssues)
			}
		}
		b.WriteString("\n### 🎯 Issue Breakdown\n\n")

		counts := map[model.Severity]int{}
		for _, r := range results {
			for _, issue := range r.Issues {
				counts[issue.Severity]++
			}
		}
		fmt.Fprintf(&b, "- 🔴 High: %d\n", counts[model.SeverityHigh])
		fmt.Fprintf(&b, "- 🟡 Medium: %d\n", counts[model.SeverityMedium])
		fmt.Fprintf(&b, "- 🟢 Low: %d\n\n", counts[model.SeverityLow])
	} else {
		b.WriteString("✅ **No issues found! Great work!**\n\n")
	}

	b.WriteString("---\n")
	b.WriteString("*Powered by static analysis + LLM review*")
	return b.String()
}

// renderFallback appends a plain-text issue digest to the summary when
// inline comments could not be posted.
func renderFallback(summary string, comments []inlineComment) string {
	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\n---\n\n")
	b.WriteString("**Note:** Failed to post inline comments. Here are the issues:\n\n")

	for i, c := range comments {
		if i >= fallbackIssueCap {
			break
		}
		fmt.Fprintf(&b, "%d. **%s** (Line %d)\n", i+1, c.Path, c.Line)
		preview := strings.SplitN(c.Body, "\n", 2)[0]
		if len(preview) > 100 {
			preview = preview[:100]
		}
		fmt.Fprintf(&b, "   %s...\n\n", preview)
	}

	return b.String()
}
