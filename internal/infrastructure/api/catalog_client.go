package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// CatalogClient fetches the stream catalog over HTTP.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewCatalogClient(baseURL string) ports.CatalogSource {
	return &CatalogClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

func (c *CatalogClient) FetchStreams(ctx context.Context) ([]domain.Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/streams", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch streams: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var body struct {
		Streams []domain.Stream `json:"streams"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode streams: %w", err)
	}
	return body.Streams, nil
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("api: unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("api: %s (status %d)", body.Error, resp.StatusCode)
}
