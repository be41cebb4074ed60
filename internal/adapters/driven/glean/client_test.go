package glean

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{APIHost: server.URL, APIToken: "glean-token"})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{APIToken: "t"})
	assert.Error(t, err)

	_, err = NewClient(Config{APIHost: "https://acme-be.glean.com"})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestNewClient_NormalizesHost(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"schemeless", "acme-be.glean.com", "https://acme-be.glean.com"},
		{"https kept", "https://acme-be.glean.com", "https://acme-be.glean.com"},
		{"http kept", "http://localhost:8080", "http://localhost:8080"},
		{"trailing slash trimmed", "https://acme-be.glean.com/", "https://acme-be.glean.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(Config{APIHost: tt.host, APIToken: "t"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.apiHost)
		})
	}
}

func TestEnsureDatasource_SendsDeclaration(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/index/v1/adddatasource", r.URL.Path)
		assert.Equal(t, "Bearer glean-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := client.EnsureDatasource(context.Background(), DatasourceDefinition("rootly-acme", "Rootly"))
	require.NoError(t, err)

	assert.Equal(t, "rootly-acme", got["name"])
	assert.Equal(t, "Rootly", got["displayName"])
	assert.Equal(t, "TICKETS", got["datasourceCategory"])
	assert.Contains(t, got["urlRegex"], "rootly.com/account")

	definitions, ok := got["objectDefinitions"].([]any)
	require.True(t, ok)
	assert.Len(t, definitions, 5)

	first, ok := definitions[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Incident", first["name"])
	assert.Equal(t, "TICKETS", first["docCategory"])
	assert.Equal(t, true, first["summarizable"])
}

func TestIndexDocuments_SendsBulkUpload(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/index/v1/bulkindexdocuments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	summary := domain.PlainText("short")
	docs := []domain.Document{
		{
			ID:         "inc-1",
			Datasource: "rootly-acme",
			ObjectType: "Incident",
			Title:      "[INC-1] Outage",
			ViewURL:    "https://rootly.com/account/incidents/inc-1",
			Status:     "resolved",
			Tags:       []string{"status:resolved"},
			Body:       domain.PlainText("full text"),
			Summary:    &summary,
			Author:     &domain.Person{Name: "Jane Doe", Email: "jane@example.com"},
			CreatedAt:  1772359200,
			UpdatedAt:  1772440200,
			Permissions: domain.Permissions{AllowAnonymousAccess: true},
		},
	}

	err := client.IndexDocuments(context.Background(), "rootly-acme", docs)
	require.NoError(t, err)

	assert.Equal(t, "rootly-acme", got["datasource"])
	assert.NotEmpty(t, got["uploadId"])
	assert.Equal(t, true, got["isFirstPage"])
	assert.Equal(t, true, got["isLastPage"])
	assert.Equal(t, true, got["forceRestartUpload"])

	documents, ok := got["documents"].([]any)
	require.True(t, ok)
	require.Len(t, documents, 1)

	doc, ok := documents[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "inc-1", doc["id"])
	assert.Equal(t, "Incident", doc["objectType"])
	assert.Equal(t, "https://rootly.com/account/incidents/inc-1", doc["viewURL"])

	body, ok := doc["body"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "text/plain", body["mimeType"])
	assert.Equal(t, "full text", body["textContent"])

	permissions, ok := doc["permissions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, permissions["allowAnonymousAccess"])

	author, ok := doc["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", author["name"])
}

func TestIndexDocuments_EmptyIsNoop(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	err := client.IndexDocuments(context.Background(), "rootly-acme", nil)
	require.NoError(t, err)
	assert.False(t, called)
}

func TestIndexDocuments_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid document"}}`))
	})

	err := client.IndexDocuments(context.Background(), "rootly-acme", []domain.Document{{ID: "x"}})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid document")
}
