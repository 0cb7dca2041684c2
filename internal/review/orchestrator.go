// Package review wires the analysis components into the per-event
// pipeline: fetch changed files, analyze each one, merge issues, and
// publish the result back to the pull request.
package review

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/analyzer"
	"github.com/sprite-ai/codex/internal/model"
)

// FileFetcher retrieves the changed files for a PR. An empty result is
// a soft failure; the pipeline continues with zero files.
type FileFetcher interface {
	FetchChangedFiles(ctx context.Context, pr *model.PullRequestContext) []model.ChangedFile
}

// StaticAnalyzer normalizes static-tool findings for one file.
type StaticAnalyzer interface {
	AnalyzeFile(ctx context.Context, path, content string) model.StaticResults
}

// FileReviewer produces the LLM review for one file.
type FileReviewer interface {
	ReviewFile(ctx context.Context, path, content string, staticIssues []model.Issue) model.LLMResult
}

// Publisher posts results back to the pull request.
type Publisher interface {
	PostReview(ctx context.Context, pr *model.PullRequestContext, results []model.FileReviewResult) error
	PostComment(ctx context.Context, pr *model.PullRequestContext, body string) error
}

// Orchestrator runs the end-to-end review pipeline for one PR event.
type Orchestrator struct {
	fetcher   FileFetcher
	static    StaticAnalyzer
	llm       FileReviewer
	publisher Publisher
	hub       *Hub
	maxLines  int
	log       *zap.Logger
}

// NewOrchestrator wires the pipeline dependencies.
func NewOrchestrator(fetcher FileFetcher, static StaticAnalyzer, llm FileReviewer, publisher Publisher, hub *Hub, maxLines int, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		static:    static,
		llm:       llm,
		publisher: publisher,
		hub:       hub,
		maxLines:  maxLines,
		log:       log,
	}
}

// ProcessEvent runs the full pipeline for one verified, parsed PR
// event. It never panics past this boundary: any unhandled failure
// becomes a structured error outcome plus a best-effort failure
// comment on the PR.
func (o *Orchestrator) ProcessEvent(ctx context.Context, pr *model.PullRequestContext) (outcome model.ReviewOutcome) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("review pipeline panicked",
				zap.String("repo", pr.RepoFullName),
				zap.Int("pr", pr.Number),
				zap.Any("panic", r))
			o.hub.Publish(Event{Type: EventReviewFailed, Repo: pr.RepoFullName, PR: pr.Number})

			msg := fmt.Sprintf("internal error: %v", r)
			o.postComment(ctx, pr, "⚠️ Code review failed due to an internal error. Please re-trigger the review.")
			outcome = model.ReviewOutcome{
				Success:  false,
				Message:  "Code review failed",
				Error:    msg,
				PRNumber: pr.Number,
			}
		}
	}()

	o.log.Info("processing pull request",
		zap.String("repo", pr.RepoFullName),
		zap.Int("pr", pr.Number),
		zap.String("title", pr.Title),
		zap.String("action", pr.Action))
	o.hub.Publish(Event{Type: EventReviewStarted, Repo: pr.RepoFullName, PR: pr.Number})

	files := o.fetcher.FetchChangedFiles(ctx, pr)
	if len(files) == 0 {
		o.postComment(ctx, pr, "ℹ️ No files to review in this pull request.")
		o.hub.Publish(Event{Type: EventReviewCompleted, Repo: pr.RepoFullName, PR: pr.Number, Note: "no files"})
		return model.ReviewOutcome{
			Success:  true,
			Message:  "No files to review",
			PRNumber: pr.Number,
		}
	}

	var results []model.FileReviewResult
	skipped := 0
	for _, file := range files {
		if !analyzer.ShouldReview(file.Path) {
			skipped++
			continue
		}

		result, ok := o.analyzeFile(ctx, file)
		if !ok {
			skipped++
			continue
		}
		results = append(results, result)
		o.hub.Publish(Event{
			Type: EventFileReviewed,
			Repo: pr.RepoFullName,
			PR:   pr.Number,
			File: file.Path,
			Note: fmt.Sprintf("%d issues", result.Summary.TotalIssues),
		})
	}

	if len(results) == 0 {
		o.postComment(ctx, pr, "ℹ️ No reviewable files found in this pull request.")
		o.hub.Publish(Event{Type: EventReviewCompleted, Repo: pr.RepoFullName, PR: pr.Number, Note: "no reviewable files"})
		return model.ReviewOutcome{
			Success:      true,
			Message:      "No reviewable files found",
			PRNumber:     pr.Number,
			FilesSkipped: skipped,
		}
	}

	err := o.publisher.PostReview(ctx, pr, results)
	outcome = buildOutcome(pr, results, skipped, err)

	evtType := EventReviewCompleted
	if !outcome.Success {
		evtType = EventReviewFailed
	}
	o.hub.Publish(Event{Type: evtType, Repo: pr.RepoFullName, PR: pr.Number, Note: outcome.Message})

	o.log.Info("review finished",
		zap.String("repo", pr.RepoFullName),
		zap.Int("pr", pr.Number),
		zap.Bool("success", outcome.Success),
		zap.Int("files_reviewed", outcome.FilesReviewed),
		zap.Int("total_issues", outcome.TotalIssues))
	return outcome
}

// analyzeFile runs both analysis passes for one file. A panic inside
// either pass drops the file without aborting the batch.
func (o *Orchestrator) analyzeFile(ctx context.Context, file model.ChangedFile) (result model.FileReviewResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("file analysis panicked, dropping file",
				zap.String("path", file.Path),
				zap.Any("panic", r))
			ok = false
		}
	}()

	content := Truncate(file.Content, o.maxLines)

	static := o.static.AnalyzeFile(ctx, file.Path, content)
	staticIssues := static.AllIssues()

	llmResult := o.llm.ReviewFile(ctx, file.Path, content, staticIssues)

	merged := model.MergeIssues(staticIssues, llmResult.Issues)

	return model.FileReviewResult{
		Path:   file.Path,
		Patch:  file.Patch,
		Static: static,
		LLM:    llmResult,
		Issues: merged,
		Summary: model.FileSummary{
			TotalIssues: len(merged),
			StaticCount: len(staticIssues),
			LLMCount:    len(llmResult.Issues),
		},
	}, true
}

func buildOutcome(pr *model.PullRequestContext, results []model.FileReviewResult, skipped int, publishErr error) model.ReviewOutcome {
	outcome := model.ReviewOutcome{
		PRNumber:      pr.Number,
		FilesReviewed: len(results),
		FilesSkipped:  skipped,
	}
	for _, r := range results {
		outcome.TotalIssues += r.Summary.TotalIssues
		outcome.StaticIssues += r.Summary.StaticCount
		outcome.LLMIssues += r.Summary.LLMCount
	}

	if publishErr != nil {
		outcome.Success = false
		outcome.Message = "Failed to post review"
		outcome.Error = publishErr.Error()
	} else {
		outcome.Success = true
		outcome.Message = "Review posted successfully"
	}
	return outcome
}

// postComment posts an informational comment, tolerating failure.
func (o *Orchestrator) postComment(ctx context.Context, pr *model.PullRequestContext, body string) {
	if err := o.publisher.PostComment(ctx, pr, body); err != nil {
		o.log.Warn("posting comment failed",
			zap.String("repo", pr.RepoFullName),
			zap.Int("pr", pr.Number),
			zap.Error(err))
	}
}
