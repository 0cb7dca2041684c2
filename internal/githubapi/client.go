// Package githubapi is a minimal GitHub REST client covering the
// endpoints the review pipeline needs: listing changed files, fetching
// raw content, and posting reviews or issue comments.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/model"
)

// FileEntry is one entry from the pull-request files listing.
type FileEntry struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	RawURL    string `json:"raw_url"`
	Patch     string `json:"patch"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
}

// ReviewComment is one inline comment in a review request.
type ReviewComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Body string `json:"body"`
}

// Client talks to the GitHub REST API with bearer-token auth.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a GitHub API client. baseURL is normally
// https://api.github.com; tests point it at a local server.
func NewClient(baseURL, token string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// GetPullRequest fetches PR metadata and builds a review context from
// it. Used by the one-shot CLI path, where no webhook payload exists.
func (c *Client) GetPullRequest(ctx context.Context, repoFullName string, number int) (*model.PullRequestContext, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.baseURL, repoFullName, number)

	body, err := c.get(ctx, url, true)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		User   struct {
			Login string `json:"login"`
		} `json:"user"`
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decoding pull request: %w", err)
	}

	return &model.PullRequestContext{
		Number:       wire.Number,
		Title:        wire.Title,
		Author:       wire.User.Login,
		HeadSHA:      wire.Head.SHA,
		RepoFullName: repoFullName,
	}, nil
}

// ListPullRequestFiles returns the changed-file entries for a PR.
func (c *Client) ListPullRequestFiles(ctx context.Context, repoFullName string, number int) ([]FileEntry, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d/files", c.baseURL, repoFullName, number)

	body, err := c.get(ctx, url, true)
	if err != nil {
		return nil, err
	}

	var entries []FileEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decoding files listing: %w", err)
	}
	return entries, nil
}

// FetchRawContent downloads a file's content from its raw URL.
func (c *Client) FetchRawContent(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL, false)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// CreateReview posts a review with inline comments on a PR.
func (c *Client) CreateReview(ctx context.Context, repoFullName string, number int, body string, comments []ReviewComment) error {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d/reviews", c.baseURL, repoFullName, number)

	payload := struct {
		Body     string          `json:"body"`
		Event    string          `json:"event"`
		Comments []ReviewComment `json:"comments"`
	}{Body: body, Event: "COMMENT", Comments: comments}

	return c.post(ctx, url, payload)
}

// CreateIssueComment posts a plain comment on a PR's conversation.
func (c *Client) CreateIssueComment(ctx context.Context, repoFullName string, number int, body string) error {
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.baseURL, repoFullName, number)

	payload := struct {
		Body string `json:"body"`
	}{Body: body}

	return c.post(ctx, url, payload)
}

func (c *Client) get(ctx context.Context, url string, authed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/vnd.github.v3+json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) post(ctx context.Context, url string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, body)
	}
	return nil
}
