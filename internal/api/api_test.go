package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/config"
	"github.com/sprite-ai/codex/internal/model"
	"github.com/sprite-ai/codex/internal/review"
	"github.com/sprite-ai/codex/internal/webhook"
)

const testSecret = "hunter2"

type stubProcessor struct {
	calls chan *model.PullRequestContext
}

func newStubProcessor() *stubProcessor {
	return &stubProcessor{calls: make(chan *model.PullRequestContext, 1)}
}

func (p *stubProcessor) ProcessEvent(_ context.Context, pr *model.PullRequestContext) model.ReviewOutcome {
	p.calls <- pr
	return model.ReviewOutcome{Success: true, PRNumber: pr.Number}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.GitHub.Token = "token"
	cfg.GitHub.WebhookSecret = testSecret
	cfg.LLM.APIKey = "key"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 5000
	return cfg
}

func newTestServer(processor EventProcessor) (*Server, *review.Hub) {
	hub := review.NewHub()
	return New(testConfig(), processor, hub, zap.NewNop()), hub
}

func prPayload(action string) []byte {
	payload := map[string]any{
		"action": action,
		"pull_request": map[string]any{
			"number": 42,
			"title":  "Add feature",
			"user":   map[string]any{"login": "octocat"},
			"head":   map[string]any{"sha": "abc123"},
		},
		"repository": map[string]any{"full_name": "acme/widgets"},
	}
	raw, _ := json.Marshal(payload)
	return raw
}

func postWebhook(t *testing.T, s *Server, eventType string, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	if signature != "" {
		req.Header.Set(webhook.SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	processor := newStubProcessor()
	s, _ := newTestServer(processor)

	body := prPayload("opened")
	rec := postWebhook(t, s, "pull_request", body, "sha256=deadbeef")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid signature") {
		t.Errorf("body = %s", rec.Body.String())
	}

	select {
	case <-processor.calls:
		t.Fatal("processor must not run for unverified deliveries")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	s, _ := newTestServer(newStubProcessor())

	rec := postWebhook(t, s, "pull_request", prPayload("opened"), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	processor := newStubProcessor()
	s, _ := newTestServer(processor)

	body := []byte(`{"zen":"Design for failure."}`)
	rec := postWebhook(t, s, "ping", body, webhook.Sign(testSecret, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Event ignored") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestWebhookIgnoresUnreviewableActions(t *testing.T) {
	processor := newStubProcessor()
	s, _ := newTestServer(processor)

	body := prPayload("closed")
	rec := postWebhook(t, s, "pull_request", body, webhook.Sign(testSecret, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PR action ignored") {
		t.Errorf("body = %s", rec.Body.String())
	}

	select {
	case <-processor.calls:
		t.Fatal("processor must not run for ignored actions")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebhookStartsBackgroundReview(t *testing.T) {
	processor := newStubProcessor()
	s, _ := newTestServer(processor)

	body := prPayload("opened")
	rec := postWebhook(t, s, "pull_request", body, webhook.Sign(testSecret, body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Review started") {
		t.Errorf("body = %s", rec.Body.String())
	}

	select {
	case pr := <-processor.calls:
		if pr.Number != 42 || pr.RepoFullName != "acme/widgets" {
			t.Errorf("processed pr = %+v", pr)
		}
	case <-time.After(time.Second):
		t.Fatal("background processing never ran")
	}
}

func TestHealthHealthy(t *testing.T) {
	s, _ := newTestServer(newStubProcessor())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHealthUnhealthyWithoutCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.GitHub.Token = ""
	s := New(cfg, newStubProcessor(), review.NewHub(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GITHUB_TOKEN") {
		t.Errorf("body should name the missing key: %s", rec.Body.String())
	}
}

func TestRootStatus(t *testing.T) {
	s, _ := newTestServer(newStubProcessor())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), serviceName) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestWebSocketStreamsProgressEvents(t *testing.T) {
	s, hub := newTestServer(newStubProcessor())

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The handler subscribes shortly after the upgrade completes, so
	// keep publishing until a frame arrives.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				hub.Publish(review.Event{Type: review.EventReviewStarted, Repo: "acme/widgets", PR: 42})
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt review.Event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read: %v", err)
	}
	if evt.Type != review.EventReviewStarted || evt.PR != 42 {
		t.Errorf("event = %+v", evt)
	}
}
