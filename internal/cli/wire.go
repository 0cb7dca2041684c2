package cli

import (
	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/analyzer"
	"github.com/sprite-ai/codex/internal/comment"
	"github.com/sprite-ai/codex/internal/config"
	"github.com/sprite-ai/codex/internal/githubapi"
	"github.com/sprite-ai/codex/internal/llm"
	"github.com/sprite-ai/codex/internal/review"
)

// pipeline bundles the wired review components a command needs.
type pipeline struct {
	github       *githubapi.Client
	fetcher      *githubapi.Fetcher
	static       *analyzer.StaticAnalyzer
	reviewer     *llm.Reviewer
	orchestrator *review.Orchestrator
	hub          *review.Hub
}

// buildPipeline wires the review pipeline from configuration.
func buildPipeline(cfg *config.Config, log *zap.Logger) *pipeline {
	github := githubapi.NewClient(cfg.GitHub.APIBaseURL, cfg.GitHub.Token, log)
	fetcher := githubapi.NewFetcher(github, cfg.Review.MaxFiles, log)

	static := analyzer.NewStaticAnalyzer(log)

	completer := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, log)
	reviewer := llm.NewReviewer(completer, log)

	publisher := comment.NewPublisher(github, cfg.Review.EnableAutoFix, log)

	hub := review.NewHub()
	orchestrator := review.NewOrchestrator(fetcher, static, reviewer, publisher, hub, cfg.Review.MaxLines, log)

	return &pipeline{
		github:       github,
		fetcher:      fetcher,
		static:       static,
		reviewer:     reviewer,
		orchestrator: orchestrator,
		hub:          hub,
	}
}
