package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"staybook/internal/pkg/config"
	"staybook/internal/pkg/errs"
)

var ErrGateway = errs.New("payment gateway error")

// Gateway is a thin HTTP client for the external payment collaborator. It
// carries no protocol smarts beyond request/response; the lifecycle reacts
// to the outcomes.
type Gateway struct {
	baseURL string
	client  *http.Client
}

func NewGateway(cfg config.PaymentConfig) *Gateway {
	return &Gateway{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type authorizeRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type authorizeResponse struct {
	IntentRef string `json:"intent_ref"`
}

func (g *Gateway) Authorize(ctx context.Context, amountCents int64, currency string) (string, error) {
	var resp authorizeResponse
	if err := g.post(ctx, "/v1/intents", authorizeRequest{AmountCents: amountCents, Currency: currency}, &resp); err != nil {
		return "", err
	}
	if resp.IntentRef == "" {
		return "", errs.Mark(errs.New("gateway returned empty intent ref"), ErrGateway)
	}
	return resp.IntentRef, nil
}

func (g *Gateway) Capture(ctx context.Context, intentRef string) error {
	return g.post(ctx, fmt.Sprintf("/v1/intents/%s/capture", intentRef), nil, nil)
}

type refundRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func (g *Gateway) Refund(ctx context.Context, intentRef string, amountCents int64) error {
	return g.post(ctx, fmt.Sprintf("/v1/intents/%s/refund", intentRef), refundRequest{AmountCents: amountCents}, nil)
}

func (g *Gateway) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return errs.Mark(err, ErrGateway)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, &buf)
	if err != nil {
		return errs.Mark(err, ErrGateway)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, ErrGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Mark(errs.Newf("gateway returned status %d for %s", resp.StatusCode, path), ErrGateway)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errs.Mark(err, ErrGateway)
		}
	}
	return nil
}
