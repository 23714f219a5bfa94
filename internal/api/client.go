// Package api is the typed client for the transaction backend. The base URL
// is injected at construction; nothing here reads the process environment.
// Every mutation is a plain request/response call — the backend is the source
// of truth and callers re-fetch after it confirms.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

const timestampLayout = "2006-01-02 15:04:05"

// Config holds client construction parameters.
type Config struct {
	// BaseURL is the backend root, e.g. "https://api.example.com".
	BaseURL string

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	Logger *applog.Logger
}

// Client talks JSON over HTTPS to the transaction backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *applog.Logger
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		logger:  logger.WithComponent(applog.ComponentAPI),
	}, nil
}

// Transactions fetches all transactions whose date falls inside the
// inclusive civil date range.
func (c *Client) Transactions(ctx context.Context, start, end core.Day) ([]core.Transaction, error) {
	req := dateRangeRequest{StartDate: start.String(), EndDate: end.String()}
	var txs []core.Transaction
	if err := c.post(ctx, "/daterange", req, &txs); err != nil {
		return nil, fmt.Errorf("fetch date range %s..%s: %w", start, end, err)
	}
	return txs, nil
}

// AddTransaction records a manually entered transaction. The caller is
// responsible for validating it first.
func (c *Client) AddTransaction(ctx context.Context, tx core.Transaction) error {
	req := addTransactionRequest{
		Amount:         strings.ReplaceAll(strings.TrimSpace(tx.Amount), ",", ""),
		Classification: tx.Classification,
		Receiver:       strings.TrimSpace(tx.Receiver),
		Date:           tx.Date.Format(timestampLayout),
	}
	if err := c.post(ctx, "/add-transaction", req, nil); err != nil {
		return fmt.Errorf("add transaction: %w", err)
	}
	return nil
}

// Reclassify changes a transaction's classification. The full original
// record travels with the request so the backend can locate it.
func (c *Client) Reclassify(ctx context.Context, original core.Transaction, newClassification string) error {
	req := reclassifyRequest{Original: original, NewClassification: newClassification}
	if err := c.post(ctx, "/reclassify", req, nil); err != nil {
		return fmt.Errorf("reclassify: %w", err)
	}
	return nil
}

// Normalize submits a computed payer split. The backend persists the
// original amount and the new net amount; the updated record is returned
// when the backend provides one.
func (c *Client) Normalize(ctx context.Context, n core.Normalization) (*core.Transaction, error) {
	req := normalizeRequest{Original: n.Original}
	if n.PaidToMe.IsPositive() {
		s := n.PaidToMe.String()
		req.PaidToMe = &s
	}
	if len(n.Payers) > 0 {
		req.Payers = n.Payers
	}

	var resp normalizeResponse
	if err := c.post(ctx, "/normalize", req, &resp); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return resp.UpdatedTransaction, nil
}

// TokenStatuses fetches the session status records. The endpoint returns a
// single object for one user and an array for several; both decode into a
// slice.
func (c *Client) TokenStatuses(ctx context.Context) ([]TokenStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/token-status", nil)
	if err != nil {
		return nil, fmt.Errorf("token status: %w", err)
	}

	var many []TokenStatus
	if err := json.Unmarshal(body, &many); err == nil {
		return many, nil
	}
	var one TokenStatus
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, fmt.Errorf("token status: unexpected response shape: %w", err)
	}
	return []TokenStatus{one}, nil
}

// post sends a JSON body and decodes the response into out when non-nil.
func (c *Client) post(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Request failed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, method,
			applog.FieldEndpoint, endpoint,
			applog.FieldError, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.DebugContext(ctx, "Request completed",
		applog.FieldRequestID, requestID,
		applog.FieldMethod, method,
		applog.FieldEndpoint, endpoint,
		applog.FieldStatusCode, resp.StatusCode,
		applog.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
