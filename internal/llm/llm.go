package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/madetech/CodeCommit-AI-Summariser/internal/models"
	"github.com/madetech/CodeCommit-AI-Summariser/internal/retry"
)

// completionAPI is the slice of the OpenAI client the summarizer uses.
// *openai.Client satisfies it; tests substitute a fake.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	api    completionAPI
	model  string
	policy retry.Policy
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
		policy: retry.Policy{
			MaxAttempts:  4,
			InitialDelay: 2 * time.Second,
		},
	}
}

const systemPrompt = `You are a technical analyst. Given the README of a source repository, produce a JSON object with:

1. "summary": A 2-3 sentence summary of what the repository does and its main use case.
2. "tech_stack": A comma-separated list of the languages, frameworks and tools the README indicates the project uses.

Return ONLY valid JSON. No markdown, no code fences.`

// Summarize analyzes README text. The returned analysis is always usable:
// empty input short-circuits to a sentinel without calling the API, a
// response missing a key gets a per-key sentinel, and when every attempt
// fails the analysis carries failure sentinels and the last error is
// returned so the caller can log it.
func (c *Client) Summarize(ctx context.Context, readme string) (models.Analysis, error) {
	if strings.TrimSpace(readme) == "" {
		return models.EmptyReadmeAnalysis(), nil
	}

	userMsg := fmt.Sprintf("README content:\n%s", readme)

	var result models.Analysis
	err := c.policy.Do(ctx, func() error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userMsg},
			},
			// No ResponseFormat — not all models support json_object mode.
			// The system prompt instructs the model to return pure JSON.
			Temperature: 0.3,
		})
		if err != nil {
			return fmt.Errorf("LLM call: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices returned")
		}

		content := stripCodeFences(resp.Choices[0].Message.Content)

		// Pointer fields distinguish a missing key from an empty string.
		var envelope struct {
			Summary   *string `json:"summary"`
			TechStack *string `json:"tech_stack"`
		}
		if err := json.Unmarshal([]byte(content), &envelope); err != nil {
			return fmt.Errorf("parsing LLM response: %w\nraw: %s", err, content)
		}

		result = models.Analysis{
			Summary:   models.SummaryNotGenerated,
			TechStack: models.TechStackNotIdentified,
		}
		if envelope.Summary != nil {
			result.Summary = *envelope.Summary
		}
		if envelope.TechStack != nil {
			result.TechStack = *envelope.TechStack
		}
		return nil
	})
	if err != nil {
		return models.FailedAnalysis(), err
	}
	return result, nil
}

// stripCodeFences removes markdown code fences that some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence (```json or ```)
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		// Remove closing fence
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
