package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madetech/CodeCommit-AI-Summariser/internal/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_BASE_URL", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OUTPUT_FILE", "")
	t.Setenv("PACING_DELAY", "")

	cfg := config.Load()

	assert.Equal(t, "https://api.openai.com/v1", cfg.LLMBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "repo_summaries.csv", cfg.OutputFile)
	assert.Equal(t, time.Second, cfg.PacingDelay)
	require.NoError(t, cfg.Validate())
}

func TestLoadHonoursOverrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("OUTPUT_FILE", "summaries.csv")
	t.Setenv("PACING_DELAY", "250ms")

	cfg := config.Load()

	assert.Equal(t, "gpt-4o", cfg.LLMModel)
	assert.Equal(t, "summaries.csv", cfg.OutputFile)
	assert.Equal(t, 250*time.Millisecond, cfg.PacingDelay)
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	cfg := config.Load()

	assert.ErrorContains(t, cfg.Validate(), "LLM_API_KEY")
}
