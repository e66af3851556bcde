package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/healthease/healthease-api/internal/config"
)

type HTTPClient struct {
	url    string
	client *http.Client
}

func NewHTTPClient(cfg config.IdentityConfig) *HTTPClient {
	return &HTTPClient{
		url:    cfg.SessionDataURL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *HTTPClient) ResolveSession(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building session-data request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, ErrInvalidSession
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding session data: %w", err)
	}
	if data.Email == "" {
		return nil, ErrInvalidSession
	}
	return &data, nil
}
