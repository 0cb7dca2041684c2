package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		GitHub: GitHubConfig{Token: "ghp_x", WebhookSecret: "hunter2", APIBaseURL: "https://api.github.com"},
		LLM:    LLMConfig{APIKey: "sk-x", Model: "llama-3.3-70b-versatile"},
		Server: ServerConfig{Host: "0.0.0.0", Port: 5000},
		Review: ReviewConfig{MaxFiles: 20, MaxLines: 500, EnableAutoFix: true},
	}
}

func TestValidateOK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"token", func(c *Config) { c.GitHub.Token = "" }, "GITHUB_TOKEN"},
		{"secret", func(c *Config) { c.GitHub.WebhookSecret = "" }, "GITHUB_WEBHOOK_SECRET"},
		{"llm key", func(c *Config) { c.LLM.APIKey = "" }, "LLM_API_KEY"},
	}

	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q should name %s", tc.name, err, tc.want)
		}
	}
}

func TestValidateAllMissingListsAll(t *testing.T) {
	cfg := validConfig()
	cfg.GitHub.Token = ""
	cfg.GitHub.WebhookSecret = ""
	cfg.LLM.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"GITHUB_TOKEN", "GITHUB_WEBHOOK_SECRET", "LLM_API_KEY"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should name %s", err, key)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_WEBHOOK_SECRET", "hunter2")
	t.Setenv("LLM_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("default port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Review.MaxFiles != 20 {
		t.Errorf("default max files = %d, want 20", cfg.Review.MaxFiles)
	}
	if cfg.Review.MaxLines != 500 {
		t.Errorf("default max lines = %d, want 500", cfg.Review.MaxLines)
	}
	if !cfg.Review.EnableAutoFix {
		t.Error("auto-fix should default to enabled")
	}
	if cfg.Server.Addr() != "0.0.0.0:5000" {
		t.Errorf("addr = %q", cfg.Server.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_WEBHOOK_SECRET", "hunter2")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("REVIEW_MAX_FILES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Review.MaxFiles != 5 {
		t.Errorf("max files = %d, want 5", cfg.Review.MaxFiles)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_WEBHOOK_SECRET", "")
	t.Setenv("LLM_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("load should fail without required keys")
	}
}
