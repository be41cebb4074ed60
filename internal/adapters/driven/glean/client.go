// Package glean submits datasource declarations and documents to the
// Glean indexing API.
package glean

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

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchIndex = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	indexBasePath = "/api/index/v1"
)

// Config holds configuration for the Glean indexing client.
type Config struct {
	// APIHost is the indexing API host, e.g.
	// https://acme-be.glean.com (required).
	APIHost string

	// APIToken is the indexing API token (required).
	APIToken string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Client talks to the Glean indexing REST API.
type Client struct {
	client   *http.Client
	apiHost  string
	apiToken string
}

// APIError is a non-2xx response from the indexing API. The body is
// kept verbatim so structured error details survive into logs.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("glean: API returned status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a Glean indexing client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIHost == "" {
		return nil, fmt.Errorf("glean: API host is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("glean: %w", domain.ErrMissingCredentials)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	// Hosts are accepted with or without a scheme, matching how users
	// configure glean.api_host.
	host := strings.TrimRight(cfg.APIHost, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiHost:  host,
		apiToken: cfg.APIToken,
	}, nil
}

// datasourcePayload is the adddatasource request format.
type datasourcePayload struct {
	Name               string             `json:"name"`
	DisplayName        string             `json:"displayName"`
	DatasourceCategory string             `json:"datasourceCategory"`
	URLRegex           string             `json:"urlRegex"`
	ObjectDefinitions  []objectDefinition `json:"objectDefinitions"`
}

type objectDefinition struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"displayLabel"`
	DocCategory  string `json:"docCategory"`
	Summarizable bool   `json:"summarizable"`
}

// EnsureDatasource creates or updates the datasource declaration.
// The endpoint is an upsert, so repeated runs are safe.
func (c *Client) EnsureDatasource(ctx context.Context, def driven.DatasourceDefinition) error {
	payload := datasourcePayload{
		Name:               def.Name,
		DisplayName:        def.DisplayName,
		DatasourceCategory: def.Category,
		URLRegex:           def.URLRegex,
		ObjectDefinitions:  make([]objectDefinition, 0, len(def.ObjectDefinitions)),
	}
	for _, od := range def.ObjectDefinitions {
		payload.ObjectDefinitions = append(payload.ObjectDefinitions, objectDefinition{
			Name:         od.Name,
			DisplayLabel: od.DisplayLabel,
			DocCategory:  od.DocCategory,
			Summarizable: od.Summarizable,
		})
	}

	logger.Info("Creating/updating datasource %q", def.Name)
	return c.post(ctx, "/adddatasource", payload)
}

// bulkIndexPayload is the bulkindexdocuments request format. One upload
// carries the whole run's output in a single page.
type bulkIndexPayload struct {
	UploadID           string     `json:"uploadId"`
	Datasource         string     `json:"datasource"`
	Documents          []indexDoc `json:"documents"`
	IsFirstPage        bool       `json:"isFirstPage"`
	IsLastPage         bool       `json:"isLastPage"`
	ForceRestartUpload bool       `json:"forceRestartUpload"`
}

type indexDoc struct {
	ID          string           `json:"id"`
	Datasource  string           `json:"datasource"`
	ObjectType  string           `json:"objectType"`
	Title       string           `json:"title"`
	ViewURL     string           `json:"viewURL"`
	Body        *indexContent    `json:"body,omitempty"`
	Summary     *indexContent    `json:"summary,omitempty"`
	Author      *indexPerson     `json:"author,omitempty"`
	Status      string           `json:"status,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	CreatedAt   int64            `json:"createdAt,omitempty"`
	UpdatedAt   int64            `json:"updatedAt,omitempty"`
	Permissions indexPermissions `json:"permissions"`
}

type indexContent struct {
	MIMEType    string `json:"mimeType"`
	TextContent string `json:"textContent"`
}

type indexPerson struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type indexPermissions struct {
	AllowAnonymousAccess bool `json:"allowAnonymousAccess"`
}

// IndexDocuments bulk-uploads documents into the named datasource as a
// single-page upload with a fresh upload id.
func (c *Client) IndexDocuments(ctx context.Context, datasource string, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	payload := bulkIndexPayload{
		UploadID:           "rootsync-" + uuid.NewString(),
		Datasource:         datasource,
		Documents:          make([]indexDoc, 0, len(docs)),
		IsFirstPage:        true,
		IsLastPage:         true,
		ForceRestartUpload: true,
	}
	for _, doc := range docs {
		payload.Documents = append(payload.Documents, toIndexDoc(doc))
	}

	logger.Info("Bulk indexing %d documents into %q (upload %s)",
		len(docs), datasource, payload.UploadID)
	return c.post(ctx, "/bulkindexdocuments", payload)
}

func toIndexDoc(doc domain.Document) indexDoc {
	out := indexDoc{
		ID:         doc.ID,
		Datasource: doc.Datasource,
		ObjectType: doc.ObjectType,
		Title:      doc.Title,
		ViewURL:    doc.ViewURL,
		Status:     doc.Status,
		Tags:       doc.Tags,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		Permissions: indexPermissions{
			AllowAnonymousAccess: doc.Permissions.AllowAnonymousAccess,
		},
	}
	if doc.Body.Text != "" {
		out.Body = &indexContent{MIMEType: doc.Body.MIMEType, TextContent: doc.Body.Text}
	}
	if doc.Summary != nil {
		out.Summary = &indexContent{MIMEType: doc.Summary.MIMEType, TextContent: doc.Summary.Text}
	}
	if doc.Author != nil {
		out.Author = &indexPerson{Name: doc.Author.Name, Email: doc.Author.Email}
	}
	return out
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.apiHost+indexBasePath+path,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logAPIErrorDetails(body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// logAPIErrorDetails re-indents structured error bodies so per-document
// rejection reasons are readable in the log.
func logAPIErrorDetails(body []byte) {
	var details map[string]any
	if err := json.Unmarshal(body, &details); err != nil {
		return
	}
	pretty, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		return
	}
	logger.Error("Indexing API error details:\n%s", string(pretty))
}
