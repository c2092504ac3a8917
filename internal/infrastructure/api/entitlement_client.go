package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
)

// EntitlementClient resolves premium status against the backend.
type EntitlementClient struct {
	baseURL string
	client  *http.Client
}

func NewEntitlementClient(baseURL string) ports.EntitlementSource {
	return &EntitlementClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

func (c *EntitlementClient) CheckPremium(ctx context.Context, email string) (*domain.Entitlement, error) {
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user/premium", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check premium: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var body struct {
		Premium      bool       `json:"isPremium"`
		PremiumUntil *time.Time `json:"premiumUntil"`
		User         *struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode premium: %w", err)
	}

	ent := &domain.Entitlement{
		Email:        email,
		Premium:      body.Premium,
		PremiumUntil: body.PremiumUntil,
	}
	if body.User != nil {
		ent.Name = body.User.Name
	}
	return ent, nil
}
