package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/codex/internal/config"
	"github.com/sprite-ai/codex/internal/logging"
	"github.com/sprite-ai/codex/internal/model"
	"github.com/sprite-ai/codex/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review owner/repo#number",
	Short: "Review a single pull request from the command line",
	Long: `Run the full review pipeline against one pull request and print the
findings. By default nothing is posted to GitHub; pass --post to publish
the review as if it had arrived via webhook.

Examples:
  codex review acme/widgets#42
  codex review acme/widgets#42 --post`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().Bool("post", false, "post the review to the pull request")
	reviewCmd.Flags().Bool("anti-patterns", false, "also scan reviewed files for anti-patterns (dry-run only)")
	reviewCmd.Flags().Bool("fix", false, "generate fixes for high-severity issues that lack one (dry-run only)")
}

// capturePublisher collects results instead of posting them, for the
// dry-run path.
type capturePublisher struct {
	results  []model.FileReviewResult
	comments []string
}

func (c *capturePublisher) PostReview(_ context.Context, _ *model.PullRequestContext, results []model.FileReviewResult) error {
	c.results = results
	return nil
}

func (c *capturePublisher) PostComment(_ context.Context, _ *model.PullRequestContext, body string) error {
	c.comments = append(c.comments, body)
	return nil
}

func runReview(cmd *cobra.Command, args []string) error {
	repo, number, err := parsePRRef(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logging.New("warn")
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	p := buildPipeline(cfg, log)
	ctx := cmd.Context()

	pr, err := p.github.GetPullRequest(ctx, repo, number)
	if err != nil {
		return fmt.Errorf("fetching pull request: %w", err)
	}

	fmt.Printf("%s %s\n", titleStyle.Render(fmt.Sprintf("%s#%d", repo, number)), pr.Title)
	fmt.Printf("%s\n\n", dimStyle.Render("by @"+pr.Author))

	post, _ := cmd.Flags().GetBool("post")
	if post {
		outcome := p.orchestrator.ProcessEvent(ctx, pr)
		return printOutcome(outcome)
	}

	capture := &capturePublisher{}
	dryRun := review.NewOrchestrator(p.fetcher, p.static, p.reviewer, capture, review.NewHub(), cfg.Review.MaxLines, log)
	outcome := dryRun.ProcessEvent(ctx, pr)

	printResults(capture.results)

	antiPatterns, _ := cmd.Flags().GetBool("anti-patterns")
	fix, _ := cmd.Flags().GetBool("fix")
	if antiPatterns || fix {
		contents := make(map[string]string)
		for _, file := range p.fetcher.FetchChangedFiles(ctx, pr) {
			contents[file.Path] = file.Content
		}
		if antiPatterns {
			printAntiPatterns(ctx, p, capture.results, contents)
		}
		if fix {
			printGeneratedFixes(ctx, p, capture.results, contents)
		}
	}

	return printOutcome(outcome)
}

func printAntiPatterns(ctx context.Context, p *pipeline, results []model.FileReviewResult, contents map[string]string) {
	fmt.Println(titleStyle.Render("Anti-patterns"))
	found := false
	for _, r := range results {
		for _, pat := range p.reviewer.DetectAntiPatterns(ctx, contents[r.Path]) {
			found = true
			loc := r.Path
			if pat.Line > 0 {
				loc = fmt.Sprintf("%s:%d", r.Path, pat.Line)
			}
			fmt.Printf("  %s %s\n", mediumStyle.Render(pat.Name), dimStyle.Render(loc))
			fmt.Printf("      %s\n", pat.Problem)
			if pat.Alternative != "" {
				fmt.Printf("      %s\n", dimStyle.Render("instead: "+pat.Alternative))
			}
		}
	}
	if !found {
		fmt.Println(dimStyle.Render("  none detected"))
	}
	fmt.Println()
}

func printGeneratedFixes(ctx context.Context, p *pipeline, results []model.FileReviewResult, contents map[string]string) {
	fmt.Println(titleStyle.Render("Generated fixes"))
	found := false
	for _, r := range results {
		for _, issue := range r.Issues {
			if issue.Severity != model.SeverityHigh || issue.AutoFix != "" {
				continue
			}
			found = true
			fmt.Printf("  %s %s\n", fileStyle.Render(fmt.Sprintf("%s:%d", r.Path, issue.Line)), issue.Message)
			fmt.Println(p.reviewer.GenerateAutoFix(ctx, contents[r.Path], issue))
			fmt.Println()
		}
	}
	if !found {
		fmt.Println(dimStyle.Render("  nothing to fix"))
	}
	fmt.Println()
}

// parsePRRef splits "owner/repo#number" into its parts.
func parsePRRef(ref string) (string, int, error) {
	repo, numStr, ok := strings.Cut(ref, "#")
	if !ok || !strings.Contains(repo, "/") {
		return "", 0, fmt.Errorf("invalid reference %q, expected owner/repo#number", ref)
	}
	number, err := strconv.Atoi(numStr)
	if err != nil || number <= 0 {
		return "", 0, fmt.Errorf("invalid PR number in %q", ref)
	}
	return repo, number, nil
}

func printResults(results []model.FileReviewResult) {
	for _, r := range results {
		fmt.Printf("%s  %s\n", fileStyle.Render(r.Path),
			dimStyle.Render(fmt.Sprintf("%d issues", r.Summary.TotalIssues)))

		for _, issue := range r.Issues {
			loc := ""
			if issue.Line > 0 {
				loc = fmt.Sprintf(":%d", issue.Line)
			}
			fmt.Printf("  %s %s%s %s\n", severityLabel(issue.Severity),
				r.Path, loc, issue.Message)
			if issue.Suggestion != "" {
				fmt.Printf("      %s\n", dimStyle.Render("suggestion: "+issue.Suggestion))
			}
		}
		fmt.Println()
	}
}

func printOutcome(outcome model.ReviewOutcome) error {
	if !outcome.Success {
		fmt.Printf("%s %s", failStyle.Render("✗"), outcome.Message)
		if outcome.Error != "" {
			fmt.Printf(" (%s)", outcome.Error)
		}
		fmt.Println()
		os.Exit(1)
	}

	fmt.Printf("%s %s — %d file(s), %d issue(s) (%d static, %d llm), %d skipped\n",
		okStyle.Render("✓"), outcome.Message,
		outcome.FilesReviewed, outcome.TotalIssues,
		outcome.StaticIssues, outcome.LLMIssues, outcome.FilesSkipped)
	return nil
}

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return highStyle.Render("[HIGH]")
	case model.SeverityMedium:
		return mediumStyle.Render("[MEDIUM]")
	case model.SeverityLow:
		return lowStyle.Render("[LOW]")
	default:
		return infoStyle.Render("[INFO]")
	}
}
