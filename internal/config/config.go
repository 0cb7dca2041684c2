// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// Config holds the full application configuration.
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Server  ServerConfig  `mapstructure:"server"`
	Review  ReviewConfig  `mapstructure:"review"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GitHubConfig carries the API token and webhook secret.
type GitHubConfig struct {
	Token         string `mapstructure:"token"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	APIBaseURL    string `mapstructure:"api_base_url"`
}

// LLMConfig configures the chat-completion endpoint.
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// ServerConfig contains webhook server options.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port for HTTP server binding.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ReviewConfig bounds the review pipeline.
type ReviewConfig struct {
	MaxFiles      int  `mapstructure:"max_files"`
	MaxLines      int  `mapstructure:"max_lines"`
	EnableAutoFix bool `mapstructure:"enable_auto_fix"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the environment using viper, seeding it
// from a .env file when one is present. Required keys are validated;
// missing ones refuse startup.
func Load() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for key, val := range envMap {
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)

	v.SetDefault("github.api_base_url", "https://api.github.com")

	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")

	v.SetDefault("review.max_files", 20)
	v.SetDefault("review.max_lines", 500)
	v.SetDefault("review.enable_auto_fix", true)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"server.host",
		"server.port",
		"github.token",
		"github.webhook_secret",
		"github.api_base_url",
		"llm.api_key",
		"llm.model",
		"llm.base_url",
		"review.max_files",
		"review.max_lines",
		"review.enable_auto_fix",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	var missing []string
	if c.GitHub.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.GitHub.WebhookSecret == "" {
		missing = append(missing, "GITHUB_WEBHOOK_SECRET")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	return nil
}
