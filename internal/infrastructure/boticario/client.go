// Package boticario talks to the partner API that accumulates each
// reseller's total cashback credit. Calls are single-shot: failures are
// surfaced immediately, never retried, and never cached.
package boticario

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "cashback.backend/internal/domain/errors"
)

const defaultTimeout = 10 * time.Second

// Config holds the partner API endpoint and credential.
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Client is the outbound HTTP client for the partner cashback API.
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

// NewClient creates a partner API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
	}
}

type cashbackEnvelope struct {
	StatusCode int `json:"statusCode"`
	Body       struct {
		Credit decimal.Decimal `json:"credit"`
	} `json:"body"`
}

// GetTotalCashback fetches the accumulated cashback credit for a
// normalized CPF. A non-200 transport status, a non-200 embedded
// statusCode, a timeout, or a malformed body all surface as ErrUpstream.
func (c *Client) GetTotalCashback(ctx context.Context, cpf string) (decimal.Decimal, error) {
	endpoint := c.baseURL + "/v1/cashback?cpf=" + url.QueryEscape(cpf)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build partner request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("get total cashback for cpf %s: %v: %w", cpf, err, domainerrors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("get total cashback for cpf %s: status %d: %w", cpf, resp.StatusCode, domainerrors.ErrUpstream)
	}

	var envelope cashbackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return decimal.Decimal{}, fmt.Errorf("get total cashback for cpf %s: decode body: %w", cpf, domainerrors.ErrUpstream)
	}
	if envelope.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("get total cashback for cpf %s: envelope status %d: %w", cpf, envelope.StatusCode, domainerrors.ErrUpstream)
	}

	return envelope.Body.Credit, nil
}
