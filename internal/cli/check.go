package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/codex/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration and analysis tools",
	Long: `Check that required configuration is present and that the static
analysis tools (pylint, bandit, radon) are installed.

Exit codes:
  0 — ready to serve
  1 — missing configuration or tools`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ok := true

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("%s configuration: %v\n", failStyle.Render("✗"), err)
		ok = false
	} else {
		fmt.Printf("%s configuration\n", okStyle.Render("✓"))
		fmt.Printf("  %s\n", dimStyle.Render("model: "+cfg.LLM.Model))
		fmt.Printf("  %s\n", dimStyle.Render("github: "+cfg.GitHub.APIBaseURL))
	}

	// Missing tools degrade reviews rather than break them, so report
	// them but keep the exit code driven by configuration.
	for _, tool := range []string{"pylint", "bandit", "radon"} {
		if path, err := exec.LookPath(tool); err == nil {
			fmt.Printf("%s %s %s\n", okStyle.Render("✓"), tool, dimStyle.Render(path))
		} else {
			fmt.Printf("%s %s not found; its findings will be skipped\n", failStyle.Render("✗"), tool)
		}
	}

	if !ok {
		os.Exit(1)
	}
	return nil
}
