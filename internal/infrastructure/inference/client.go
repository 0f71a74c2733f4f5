package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ReviewMiner/internal/ports"
)

// Client talks to a remote sequence-classification service hosting the
// five-class multilingual sentiment model.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

var _ ports.SentimentModel = (*Client)(nil)

// NewClient creates a reusable HTTP client for the inference service.
func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Loader returns the one-time initialization hook for the classifier: it
// checks the service actually serves the configured model before any row is
// classified, so a missing model fails the run up front instead of leaking
// into per-row scores.
func Loader(endpoint, apiKey, model string) ports.ModelLoader {
	return func(ctx context.Context) (ports.SentimentModel, error) {
		c := NewClient(endpoint, apiKey, model)
		if err := c.ready(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
}

func (c *Client) ready(ctx context.Context) error {
	target := fmt.Sprintf("%s/models/%s", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("reach inference service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model %s unavailable: %s", c.model, resp.Status)
	}
	return nil
}

// Predict sends the (already truncated) text for scoring and returns the
// five class logits.
func (c *Client) Predict(ctx context.Context, text string) ([]float64, error) {
	payload := map[string]any{
		"model": c.model,
		"text":  text,
	}

	var resp struct {
		Logits []float64 `json:"logits"`
	}
	if err := c.post(ctx, "/predict", payload, &resp); err != nil {
		return nil, err
	}

	return resp.Logits, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
