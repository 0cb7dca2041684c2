// Package model defines the core data types shared across codex.
package model

import (
	"encoding/json"
	"strings"
)

// Severity ranks how serious an issue is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a severity string to a Severity. Unknown values
// fall back to medium.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// MarshalJSON renders the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the string form, defaulting anything else to medium.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*s = SeverityMedium
		return nil
	}
	*s = ParseSeverity(str)
	return nil
}

// Issue is a single normalized finding from any analysis source.
// Line 0 means the issue cannot be anchored to a line and belongs in
// the review summary rather than an inline comment.
type Issue struct {
	Line       int      `json:"line"`
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	AutoFix    string   `json:"auto_fix,omitempty"`
}

// PullRequestContext identifies one review target. It is created by the
// event parser and consumed read-only by every downstream component.
type PullRequestContext struct {
	Action       string
	Number       int
	Title        string
	URL          string
	Author       string
	BaseBranch   string
	HeadBranch   string
	HeadSHA      string
	RepoFullName string
	RepoOwner    string
	RepoName     string
}

// FileStatus is the change status of a file in a pull request.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
)

// ChangedFile is one changed file in a pull request, with its full
// content (possibly truncated before analysis) and change stats.
type ChangedFile struct {
	Path      string
	Content   string
	Patch     string
	Status    FileStatus
	Additions int
	Deletions int
	Changes   int
}

// StaticSummary counts issues per static-analysis category.
type StaticSummary struct {
	TotalIssues     int `json:"total_issues"`
	StyleCount      int `json:"style_count"`
	SecurityCount   int `json:"security_count"`
	ComplexityCount int `json:"complexity_count"`
}

// StaticResults groups static-analysis issues by category.
type StaticResults struct {
	StyleIssues      []Issue       `json:"style_issues"`
	SecurityIssues   []Issue       `json:"security_issues"`
	ComplexityIssues []Issue       `json:"complexity_issues"`
	Summary          StaticSummary `json:"summary"`
}

// AllIssues returns every static issue in category order: style,
// security, complexity.
func (r StaticResults) AllIssues() []Issue {
	all := make([]Issue, 0, len(r.StyleIssues)+len(r.SecurityIssues)+len(r.ComplexityIssues))
	all = append(all, r.StyleIssues...)
	all = append(all, r.SecurityIssues...)
	all = append(all, r.ComplexityIssues...)
	return all
}

// LLMResult is the outcome of one LLM review of a file. Success false
// means the review degraded (parse or transport failure): Issues is
// empty and OverallFeedback carries a diagnostic.
type LLMResult struct {
	Issues          []Issue `json:"issues"`
	OverallFeedback string  `json:"overall_feedback"`
	Success         bool    `json:"success"`
}

// FileSummary counts merged issues for one file by source.
type FileSummary struct {
	TotalIssues int `json:"total_issues"`
	StaticCount int `json:"static_count"`
	LLMCount    int `json:"llm_count"`
}

// FileReviewResult is one analyzed file's outcome: both analysis
// results, the merged issue list, and per-source counts. Patch keeps
// the original diff text for position mapping when commenting.
type FileReviewResult struct {
	Path    string
	Patch   string
	Static  StaticResults
	LLM     LLMResult
	Issues  []Issue
	Summary FileSummary
}

// ReviewOutcome is the pipeline's final result for one PR event.
type ReviewOutcome struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PRNumber      int    `json:"pr_number"`
	FilesReviewed int    `json:"files_reviewed"`
	FilesSkipped  int    `json:"files_skipped"`
	TotalIssues   int    `json:"total_issues"`
	StaticIssues  int    `json:"static_issues"`
	LLMIssues     int    `json:"llm_issues"`
	Error         string `json:"error,omitempty"`
}

// MergeIssues concatenates static and LLM issues, static first. The
// order matters only for display.
func MergeIssues(static, llm []Issue) []Issue {
	merged := make([]Issue, 0, len(static)+len(llm))
	merged = append(merged, static...)
	merged = append(merged, llm...)
	return merged
}
