package zeroshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/domain"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/resilience"
)

// Client calls a zero-shot classification inference endpoint (the
// transformers pipeline wire format: inputs plus candidate_labels in,
// parallel labels/scores arrays out). It backs the advisory validator.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config, executor *resilience.Executor) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type classifyRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		CandidateLabels []string `json:"candidate_labels"`
	} `json:"parameters"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify scores the text against candidate labels, descending by score.
func (c *Client) Classify(ctx context.Context, text string, labels []string) ([]ports.LabelScore, error) {
	if len(labels) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "zero-shot classify", fmt.Errorf("no candidate labels"))
	}

	request := classifyRequest{Inputs: text}
	request.Parameters.CandidateLabels = labels

	var response classifyResponse
	err := c.executor.Execute(ctx, "zeroshot.classify", func(ctx context.Context) error {
		return c.post(ctx, request, &response)
	}, resilience.ClassifyTransportError)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUnavailable, "zero-shot classify", err)
	}

	if len(response.Labels) != len(response.Scores) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "zero-shot classify",
			fmt.Errorf("labels/scores length mismatch: %d/%d", len(response.Labels), len(response.Scores)))
	}

	out := make([]ports.LabelScore, 0, len(response.Labels))
	for i, label := range response.Labels {
		out = append(out, ports.LabelScore{Label: label, Score: response.Scores[i]})
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("zero-shot classify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return resilience.NewStatusError("zero-shot classify", resp.StatusCode, resp.Status, string(raw))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode classify response: %w", err)
	}
	return nil
}
