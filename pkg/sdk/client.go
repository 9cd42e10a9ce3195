package askdex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *Client) {
		c.apiKey = key
	})
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		c.httpClient = hc
	})
}

// Client is the askdex SDK entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client for the askdex API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// Ask runs a question through the pipeline.
func (c *Client) Ask(ctx context.Context, question string) (Answer, error) {
	var out Answer
	err := c.do(ctx, http.MethodPost, "/ask", map[string]string{"question": question}, &out)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}
	return out, nil
}

// CreateRecord stores a new record and returns it with its assigned id.
func (c *Client) CreateRecord(ctx context.Context, fields []Field) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPost, "/records", map[string][]Field{"fields": fields}, &out)
	if err != nil {
		return Record{}, fmt.Errorf("create record: %w", err)
	}
	return out, nil
}

// GetRecord fetches a record by id.
func (c *Client) GetRecord(ctx context.Context, id int64) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/records/%d", id), nil, &out)
	if err != nil {
		return Record{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return out, nil
}

// UpdateRecord replaces a record's fields.
func (c *Client) UpdateRecord(ctx context.Context, id int64, fields []Field) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/records/%d", id), map[string][]Field{"fields": fields}, &out)
	if err != nil {
		return Record{}, fmt.Errorf("update record %d: %w", id, err)
	}
	return out, nil
}

// DeleteRecord removes a record. Deleting an absent id succeeds.
func (c *Client) DeleteRecord(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/records/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	return nil
}

// ListRecords returns every record in insertion order.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	var out struct {
		Items []Record `json:"items"`
		Total int      `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/records", nil, &out); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out.Items, nil
}

// Health checks the health of all system components. A degraded service is
// not an error: the report carries per-component results.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return HealthStatus{}, fmt.Errorf("health: decode response: %w", err)
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiErrorFrom(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Fields  []string `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Fields = body.Fields
	} else {
		apiErr.Code = "unknown"
		apiErr.Message = resp.Status
	}
	return apiErr
}
