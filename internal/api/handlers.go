package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/webhook"
)

// maxWebhookBody bounds the webhook payload size (GitHub caps payloads
// at 25 MB).
const maxWebhookBody = 25 << 20

// processTimeout bounds one background review run.
const processTimeout = 10 * time.Minute

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Validate(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleWebhook verifies, filters, and acknowledges a GitHub delivery.
// The review itself runs in the background; GitHub expects a response
// within seconds, long before a review can finish.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("webhook handler panicked", zap.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   fmt.Sprint(rec),
				"message": "Code review failed",
			})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get(webhook.SignatureHeader)
	if !webhook.VerifySignature(s.cfg.GitHub.WebhookSecret, body, signature) {
		s.log.Warn("webhook signature verification failed",
			zap.String("remote", r.RemoteAddr))
		writeError(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	eventType := r.Header.Get("X-GitHub-Event")
	if eventType != webhook.EventPullRequest {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Event ignored"})
		return
	}

	pr, ok := webhook.ParsePullRequestEvent(eventType, body)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"message": "PR action ignored"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
		defer cancel()
		s.processor.ProcessEvent(ctx, pr)
	}()

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Review started",
		"pr_number": pr.Number,
	})
}
