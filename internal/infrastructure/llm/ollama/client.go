package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/resilience"
)

// Client talks to a local Ollama instance hosting one generation model and
// one embedding model. Generation holds large accelerator-resident weights,
// so a single-slot semaphore serializes inference: concurrent classification
// requests queue instead of loading duplicate model copies.
type Client struct {
	baseURL    string
	model      string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
	gate       *semaphore.Weighted
}

type Config struct {
	BaseURL    string
	Model      string
	EmbedModel string
	Timeout    time.Duration
}

func New(cfg Config, executor *resilience.Executor) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
		gate:       semaphore.NewWeighted(1),
	}
}

// Complete runs one low-temperature completion through the inference gate.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if err := c.gate.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquire inference slot: %w", err)
	}
	defer c.gate.Release(1)

	request := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"num_predict": maxTokens,
			"temperature": temperature,
		},
	}

	var response struct {
		Response string `json:"response"`
	}
	err := c.executor.Execute(ctx, "ollama.generate", func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/generate", request, &response, "generate")
	}, classifyOllamaError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("ollama generate", err)
	}
	return strings.TrimSpace(response.Response), nil
}

// Unload asks Ollama to release the generation model's weights immediately.
// Housekeeping between batches, not part of the per-request contract.
func (c *Client) Unload(ctx context.Context) error {
	request := map[string]any{
		"model":      c.model,
		"keep_alive": 0,
	}
	var response struct{}
	err := c.executor.Execute(ctx, "ollama.unload", func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/generate", request, &response, "unload")
	}, classifyOllamaError)
	if err != nil {
		return wrapTemporaryIfNeeded("ollama unload", err)
	}
	return nil
}

// EmbedQuery encodes one text with the embedding model. Embedding bypasses
// the inference gate: the embedding model is small and Ollama handles its
// concurrency itself.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	request := map[string]any{
		"model": c.embedModel,
		"input": []string{text},
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	err := c.executor.Execute(ctx, "ollama.embed", func(ctx context.Context) error {
		return c.postJSON(ctx, "/api/embed", request, &response, "embed")
	}, classifyOllamaError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("ollama embed", err)
	}
	if len(response.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return response.Embeddings[0], nil
}
