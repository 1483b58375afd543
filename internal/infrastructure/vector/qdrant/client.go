package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/core/ports"
	"github.com/Gabriel-0110/rag-sharepoint-classifier-sub000/internal/infrastructure/resilience"
)

// Client implements the similarity store against Qdrant's REST API across
// multiple named collections (category definitions, curated examples,
// classified documents).
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

// EnsureCollection creates the collection if it does not exist. Qdrant
// answers 409 for an existing collection; that is success here.
func (c *Client) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	reqBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, collection)

	err := c.executor.Execute(ctx, "qdrant.ensure", func(ctx context.Context) error {
		status, err := c.do(ctx, http.MethodPut, url, reqBody, nil)
		if status == http.StatusConflict {
			return nil
		}
		return err
	}, resilience.ClassifyTransportError)
	if err != nil {
		return fmt.Errorf("ensure collection %s: %w", collection, err)
	}
	return nil
}

func (c *Client) Upsert(ctx context.Context, collection string, points []ports.Point) error {
	if len(points) == 0 {
		return nil
	}

	type wirePoint struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	}
	wire := make([]wirePoint, 0, len(points))
	for _, p := range points {
		wire = append(wire, wirePoint{ID: p.ID, Vector: p.Vector, Payload: p.Payload})
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, collection)
	err := c.executor.Execute(ctx, "qdrant.upsert", func(ctx context.Context) error {
		_, err := c.do(ctx, http.MethodPut, url, map[string]any{"points": wire}, nil)
		return err
	}, resilience.ClassifyTransportError)
	if err != nil {
		return fmt.Errorf("qdrant upsert into %s: %w", collection, err)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, collection string, vector []float32, limit int) ([]ports.ScoredPayload, error) {
	reqBody := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var response struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, collection)
	err := c.executor.Execute(ctx, "qdrant.search", func(ctx context.Context) error {
		_, err := c.do(ctx, http.MethodPost, url, reqBody, &response)
		return err
	}, resilience.ClassifyTransportError)
	if err != nil {
		return nil, fmt.Errorf("qdrant search in %s: %w", collection, err)
	}

	hits := make([]ports.ScoredPayload, 0, len(response.Result))
	for _, r := range response.Result {
		hits = append(hits, ports.ScoredPayload{Score: r.Score, Payload: r.Payload})
	}
	return hits, nil
}

func (c *Client) Count(ctx context.Context, collection string) (int, error) {
	var response struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/count", c.baseURL, collection)
	err := c.executor.Execute(ctx, "qdrant.count", func(ctx context.Context) error {
		_, err := c.do(ctx, http.MethodPost, url, map[string]any{"exact": true}, &response)
		return err
	}, resilience.ClassifyTransportError)
	if err != nil {
		return 0, fmt.Errorf("qdrant count in %s: %w", collection, err)
	}
	return response.Result.Count, nil
}

// do issues one JSON request and decodes the response into out when
// provided. It returns the HTTP status code alongside any error so callers
// can special-case statuses like 409.
func (c *Client) do(ctx context.Context, method, url string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("qdrant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return resp.StatusCode, resilience.NewStatusError("qdrant", resp.StatusCode, resp.Status, string(raw))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
