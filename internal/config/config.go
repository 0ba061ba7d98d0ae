package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	AWSRegion string

	OutputFile  string
	PacingDelay time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMModel:   os.Getenv("LLM_MODEL"),
		AWSRegion:  os.Getenv("AWS_REGION"),
		OutputFile: os.Getenv("OUTPUT_FILE"),
	}

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "repo_summaries.csv"
	}

	cfg.PacingDelay = time.Second
	if v := os.Getenv("PACING_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PacingDelay = d
		}
	}

	return cfg
}

// Validate reports the first missing required setting. AWS credentials are
// deliberately not checked here; the SDK resolves them through its own chain.
func (c *Config) Validate() error {
	if c.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY not set in environment")
	}
	return nil
}
