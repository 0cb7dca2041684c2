// Package comment renders review results into PR comments and posts
// them with a review-then-fallback protocol.
package comment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/githubapi"
	"github.com/sprite-ai/codex/internal/model"
)

const (
	// inlineCommentCap bounds how many inline comments one review
	// carries; the GitHub API rejects oversized reviews.
	inlineCommentCap = 20

	// fallbackIssueCap bounds the issue digest in the fallback comment.
	fallbackIssueCap = 30
)

// Poster is the subset of the GitHub client the publisher needs.
type Poster interface {
	CreateReview(ctx context.Context, repoFullName string, number int, body string, comments []githubapi.ReviewComment) error
	CreateIssueComment(ctx context.Context, repoFullName string, number int, body string) error
}

// Publisher posts review results to a pull request. The primary
// strategy is a review with inline comments; when that fails, it
// degrades to a single issue comment digesting all findings.
type Publisher struct {
	poster         Poster
	includeAutoFix bool
	log            *zap.Logger
}

// NewPublisher creates a Publisher. includeAutoFix controls whether
// auto-fix snippets are rendered into comments.
func NewPublisher(poster Poster, includeAutoFix bool, log *zap.Logger) *Publisher {
	return &Publisher{poster: poster, includeAutoFix: includeAutoFix, log: log}
}

type inlineComment struct {
	Path string
	Line int
	Body string
}

// PostReview publishes the full review. It returns an error only when
// both the primary and the fallback strategies fail.
func (p *Publisher) PostReview(ctx context.Context, pr *model.PullRequestContext, results []model.FileReviewResult) error {
	comments := collectInlineComments(results, p.includeAutoFix)
	summary := renderSummary(pr, results)

	if len(comments) == 0 {
		p.log.Info("no inline comments, posting summary as issue comment",
			zap.String("repo", pr.RepoFullName),
			zap.Int("pr", pr.Number))
		return p.poster.CreateIssueComment(ctx, pr.RepoFullName, pr.Number, summary)
	}

	capped := comments
	if len(capped) > inlineCommentCap {
		capped = capped[:inlineCommentCap]
	}

	reviewComments := make([]githubapi.ReviewComment, len(capped))
	for i, c := range capped {
		reviewComments[i] = githubapi.ReviewComment{Path: c.Path, Line: c.Line, Body: c.Body}
	}

	p.log.Info("posting review",
		zap.String("repo", pr.RepoFullName),
		zap.Int("pr", pr.Number),
		zap.Int("inline_comments", len(reviewComments)))

	err := p.poster.CreateReview(ctx, pr.RepoFullName, pr.Number, summary, reviewComments)
	if err == nil {
		return nil
	}

	p.log.Warn("review post failed, falling back to issue comment",
		zap.String("repo", pr.RepoFullName),
		zap.Int("pr", pr.Number),
		zap.Error(err))

	fallback := renderFallback(summary, comments)
	if fbErr := p.poster.CreateIssueComment(ctx, pr.RepoFullName, pr.Number, fallback); fbErr != nil {
		p.log.Error("fallback comment also failed", zap.Error(fbErr))
		return fmt.Errorf("review post failed (%v), fallback failed: %w", err, fbErr)
	}
	return nil
}

// PostComment posts a plain informational comment.
func (p *Publisher) PostComment(ctx context.Context, pr *model.PullRequestContext, body string) error {
	return p.poster.CreateIssueComment(ctx, pr.RepoFullName, pr.Number, body)
}

// collectInlineComments renders every line-anchored issue that falls
// inside its file's diff. Issues without a line, or outside the diff,
// stay summary-only.
func collectInlineComments(results []model.FileReviewResult, includeAutoFix bool) []inlineComment {
	var comments []inlineComment
	for _, result := range results {
		inDiff := diffLines(result.Path, result.Patch)
		for _, issue := range result.Issues {
			if issue.Line <= 0 {
				continue
			}
			if !lineInDiff(inDiff, issue.Line) {
				continue
			}
			comments = append(comments, inlineComment{
				Path: result.Path,
				Line: issue.Line,
				Body: formatInlineComment(result.Path, issue, includeAutoFix),
			})
		}
	}
	return comments
}
