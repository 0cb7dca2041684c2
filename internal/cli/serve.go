package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sprite-ai/codex/internal/api"
	"github.com/sprite-ai/codex/internal/config"
	"github.com/sprite-ai/codex/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	Long: `Start the HTTP server that receives GitHub webhook deliveries and
reviews pull requests as they are opened or updated.

Endpoints:
  GET  /         — Service status
  GET  /health   — Health check (validates configuration)
  POST /webhook  — GitHub webhook receiver
  GET  /api/ws   — WebSocket stream of review progress events`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	p := buildPipeline(cfg, log)

	srv := api.New(cfg, p.orchestrator, p.hub, log)
	log.Info("starting codex",
		zap.String("model", cfg.LLM.Model),
		zap.Int("max_files", cfg.Review.MaxFiles),
		zap.Bool("auto_fix", cfg.Review.EnableAutoFix))
	return srv.ListenAndServe()
}
