package githubapi

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
	"github.com/sprite-ai/codex/internal/retry"
)

const listingAttempts = 3

// Fetcher retrieves the changed files for a pull request. The listing
// call is retried with exponential backoff; per-file content fetches
// are not, a failing file is skipped individually.
type Fetcher struct {
	client   *Client
	maxFiles int
	backoff  retry.BackoffFunc
	log      *zap.Logger
}

// NewFetcher creates a Fetcher capped at maxFiles entries per PR.
func NewFetcher(client *Client, maxFiles int, log *zap.Logger) *Fetcher {
	return &Fetcher{
		client:   client,
		maxFiles: maxFiles,
		backoff:  retry.Exponential(time.Second),
		log:      log,
	}
}

// FetchChangedFiles returns the changed files of a PR with their
// content. Failure to list files after all retries is a soft failure:
// the pipeline continues with zero files.
func (f *Fetcher) FetchChangedFiles(ctx context.Context, pr *model.PullRequestContext) []model.ChangedFile {
	var entries []FileEntry
	err := retry.Do(ctx, listingAttempts, f.backoff, func() error {
		var listErr error
		entries, listErr = f.client.ListPullRequestFiles(ctx, pr.RepoFullName, pr.Number)
		return listErr
	})
	if err != nil {
		f.log.Warn("listing PR files failed, continuing with no files",
			zap.String("repo", pr.RepoFullName),
			zap.Int("pr", pr.Number),
			zap.Error(err))
		return nil
	}

	if len(entries) > f.maxFiles {
		f.log.Info("capping PR file list",
			zap.Int("total", len(entries)),
			zap.Int("max", f.maxFiles))
		entries = entries[:f.maxFiles]
	}

	var files []model.ChangedFile
	for _, entry := range entries {
		if entry.Status == string(model.FileRemoved) {
			continue
		}
		if entry.RawURL == "" {
			continue
		}

		content, err := f.client.FetchRawContent(ctx, entry.RawURL)
		if err != nil {
			f.log.Warn("fetching file content failed, skipping file",
				zap.String("path", entry.Filename),
				zap.Error(err))
			continue
		}

		files = append(files, model.ChangedFile{
			Path:      entry.Filename,
			Content:   content,
			Patch:     entry.Patch,
			Status:    model.FileStatus(entry.Status),
			Additions: entry.Additions,
			Deletions: entry.Deletions,
			Changes:   entry.Changes,
		})
	}

	return files
}
