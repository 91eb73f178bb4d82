// Package embedding generates image embeddings for products via the
// external embedding microservice, decoupled from the request path.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client calls the image-embedding HTTP microservice.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	ImageURL string `json:"image_url"`
}

type generateResponse struct {
	Embedding  []float64 `json:"embedding"`
	Dimensions int       `json:"dimensions"`
	Model      string    `json:"model"`
}

// Generate returns the embedding vector for the image at url.
func (c *Client) Generate(ctx context.Context, imageURL string) ([]float64, error) {
	body, err := json.Marshal(generateRequest{ImageURL: imageURL})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-embedding", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned %d", resp.StatusCode)
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embedding service returned empty vector")
	}
	return out.Embedding, nil
}

// Health checks service reachability via its /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("embedding service returned %d", resp.StatusCode)
	}
	return nil
}
