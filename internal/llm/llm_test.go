package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madetech/CodeCommit-AI-Summariser/internal/models"
	"github.com/madetech/CodeCommit-AI-Summariser/internal/retry"
)

type fakeResponse struct {
	content string
	err     error
}

// fakeAPI replays scripted responses; the last one repeats once exhausted.
type fakeAPI struct {
	calls     int
	responses []fakeResponse
}

func (f *fakeAPI) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	r := f.responses[i]
	if r.err != nil {
		return openai.ChatCompletionResponse{}, r.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: r.content}},
		},
	}, nil
}

func newTestClient(api completionAPI, waits *[]time.Duration) *Client {
	return &Client{
		api:   api,
		model: "test-model",
		policy: retry.Policy{
			MaxAttempts:  4,
			InitialDelay: 2 * time.Second,
			Sleep:        func(d time.Duration) { *waits = append(*waits, d) },
		},
	}
}

func TestSummarizeEmptyReadmeSkipsAPI(t *testing.T) {
	for _, readme := range []string{"", "   ", "\n\t \n"} {
		api := &fakeAPI{}
		var waits []time.Duration
		c := newTestClient(api, &waits)

		got, err := c.Summarize(context.Background(), readme)

		require.NoError(t, err)
		assert.Equal(t, models.EmptyReadmeAnalysis(), got)
		assert.Zero(t, api.calls)
	}
}

func TestSummarizeParsesFencedJSON(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{content: "```json\n{\"summary\": \"A CLI tool\", \"tech_stack\": \"Go, Cobra\"}\n```"},
	}}
	var waits []time.Duration
	c := newTestClient(api, &waits)

	got, err := c.Summarize(context.Background(), "# My Tool")

	require.NoError(t, err)
	assert.Equal(t, models.Analysis{Summary: "A CLI tool", TechStack: "Go, Cobra"}, got)
	assert.Equal(t, 1, api.calls)
	assert.Empty(t, waits)
}

func TestSummarizeMissingKeyIsNotRetried(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{content: `{"summary": "Summarized fine"}`},
	}}
	var waits []time.Duration
	c := newTestClient(api, &waits)

	got, err := c.Summarize(context.Background(), "# readme")

	require.NoError(t, err)
	assert.Equal(t, "Summarized fine", got.Summary)
	assert.Equal(t, models.TechStackNotIdentified, got.TechStack)
	assert.Equal(t, 1, api.calls)
	assert.Empty(t, waits)
}

func TestSummarizeRetriesMalformedJSONThenSucceeds(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{content: "not json at all"},
		{content: `{"summary": "S", "tech_stack": "T"}`},
	}}
	var waits []time.Duration
	c := newTestClient(api, &waits)

	got, err := c.Summarize(context.Background(), "# readme")

	require.NoError(t, err)
	assert.Equal(t, models.Analysis{Summary: "S", TechStack: "T"}, got)
	assert.Equal(t, 2, api.calls)
	assert.Equal(t, []time.Duration{2 * time.Second}, waits)
}

func TestSummarizeExhaustsRetriesAndDegrades(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{err: errors.New("service unavailable")},
	}}
	var waits []time.Duration
	c := newTestClient(api, &waits)

	got, err := c.Summarize(context.Background(), "# readme")

	require.Error(t, err)
	assert.Equal(t, models.FailedAnalysis(), got)
	assert.Equal(t, 4, api.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, waits)
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  ```json\n{\"a\":1}\n```  \n", "{\"a\":1}"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripCodeFences(tc.in))
	}
}
