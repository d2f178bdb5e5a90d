// Package erpnext implements a read-only client for the ERPNext REST API.
//
// ERPNext exposes every DocType under /api/resource/<DocType> and accepts
// JSON-encoded field lists and filter triples as query parameters. The
// client only performs list reads; all writes stay in ERPNext.
package erpnext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config carries the connection settings for an ERPNext instance.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
}

func (c Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return &ConfigError{Message: "Missing ERP_URL in environment"}
	}
	if c.APIKey == "" || c.APISecret == "" {
		return &ConfigError{Message: "Missing ERP_API_KEY or ERP_API_SECRET in environment"}
	}
	return nil
}

// Filter is a single ERPNext list filter, serialized as [field, operator, value].
type Filter struct {
	Field string
	Op    string
	Value any
}

// MarshalJSON encodes the filter in the triple form the ERPNext API expects.
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{f.Field, f.Op, f.Value})
}

// Query describes one list request against a DocType.
type Query struct {
	Fields  []string
	Filters []Filter
	OrderBy string
	Limit   int
}

// Client wraps interactions with the ERPNext REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a new client. Missing configuration is reported on
// first use rather than here, so the server can start without credentials
// and surface the problem per request.
func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// List fetches one page of a DocType listing and decodes the "data" array of
// the response envelope into out.
func (c *Client) List(ctx context.Context, doctype string, q Query, out any) error {
	if err := c.cfg.validate(); err != nil {
		return err
	}

	params := url.Values{}
	fields, err := json.Marshal(q.Fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	params.Set("fields", string(fields))
	if len(q.Filters) > 0 {
		filters, err := json.Marshal(q.Filters)
		if err != nil {
			return fmt.Errorf("encode filters: %w", err)
		}
		params.Set("filters", string(filters))
	}
	if q.OrderBy != "" {
		params.Set("order_by", q.OrderBy)
	}
	if q.Limit > 0 {
		params.Set("limit_page_length", strconv.Itoa(q.Limit))
	}

	endpoint := fmt.Sprintf("%s/api/resource/%s?%s", c.cfg.BaseURL, url.PathEscape(doctype), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+c.cfg.APIKey+":"+c.cfg.APISecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Doctype: doctype}
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s listing: %w", doctype, err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode %s listing: %w", doctype, err)
	}
	return nil
}
