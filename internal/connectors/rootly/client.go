package rootly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Rootly API v1 base URL.
	DefaultBaseURL = "https://api.rootly.com/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// contentType is the JSON:API media type Rootly speaks.
	contentType = "application/vnd.api+json"

	// maxErrorBody caps how much of an error response body is kept.
	maxErrorBody = 2048
)

// Config holds configuration for the Rootly API client.
type Config struct {
	// BaseURL is the API base URL (default: https://api.rootly.com/v1).
	BaseURL string

	// Token is the Rootly API token (required).
	Token string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client is an authenticated Rootly JSON:API client.
type Client struct {
	http        *http.Client
	baseURL     string
	rateLimiter *RateLimiter
}

// NewClient creates a new Rootly API client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = cfg.Timeout

	return &Client{
		http:        tc,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: NewRateLimiter(),
	}, nil
}

// ListOptions control a collection request.
type ListOptions struct {
	// PageSize is the page[size] query parameter.
	PageSize int

	// PageNumber is the 1-based page[number] query parameter.
	PageNumber int

	// UpdatedAfter is an ISO-8601 modification-time filter. Empty
	// values are omitted from the request entirely, never sent blank.
	UpdatedAfter string

	// Filters are additional filter[key]=value parameters.
	Filters map[string]string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.PageSize > 0 {
		q.Set("page[size]", strconv.Itoa(o.PageSize))
	}
	if o.PageNumber > 0 {
		q.Set("page[number]", strconv.Itoa(o.PageNumber))
	}
	if o.UpdatedAfter != "" {
		q.Set("updated_after", o.UpdatedAfter)
	}
	for key, value := range o.Filters {
		q.Set(fmt.Sprintf("filter[%s]", key), value)
	}
	return q
}

// ListRecords fetches one page of a collection endpoint.
func (c *Client) ListRecords(
	ctx context.Context, endpoint string, opts ListOptions,
) ([]domain.RawRecord, error) {
	return c.get(ctx, endpoint, opts.query())
}

// GetRelated fetches a sub-resource path (e.g. "incidents/<id>/events").
// The response data may be a single record or a list; both are returned
// as a slice.
func (c *Client) GetRelated(ctx context.Context, path string) ([]domain.RawRecord, error) {
	return c.get(ctx, path, nil)
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// envelope is the JSON:API response wrapper. Data is either one record
// object or an array of them.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// apiRecord is the JSON:API resource object shape.
type apiRecord struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Attributes    map[string]any `json:"attributes"`
	Relationships map[string]any `json:"relationships"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]domain.RawRecord, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	requestURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", contentType)
	req.Header.Set("Content-Type", contentType)

	logger.Debug("GET %s", requestURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        requestURL,
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return decodeRecords(env.Data)
}

// decodeRecords normalises the data member to a record slice.
func decodeRecords(data json.RawMessage) ([]domain.RawRecord, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var many []apiRecord
	if err := json.Unmarshal(data, &many); err == nil {
		return toRawRecords(many), nil
	}

	var one apiRecord
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return toRawRecords([]apiRecord{one}), nil
}

func toRawRecords(records []apiRecord) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(records))
	for _, r := range records {
		out = append(out, domain.RawRecord{
			ID:            r.ID,
			Type:          r.Type,
			Attributes:    domain.Attrs(r.Attributes),
			Relationships: domain.Attrs(r.Relationships),
		})
	}
	return out
}
