package rootly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	// Loosen the proactive throttle so tests don't sleep.
	client.rateLimiter.bucket.SetLimit(1000)
	client.rateLimiter.bucket.SetBurst(1000)
	return client, server
}

func writeRecords(w http.ResponseWriter, records ...map[string]any) {
	w.Header().Set("Content-Type", contentType)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": records})
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestListRecords_SendsAuthAndQuery(t *testing.T) {
	var gotAuth, gotAccept string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query()
		writeRecords(w)
	}))

	_, err := client.ListRecords(context.Background(), "incidents", ListOptions{
		PageSize:     5,
		PageNumber:   2,
		UpdatedAfter: "2024-01-01T00:00:00Z",
		Filters:      map[string]string{"schedule_id": "s1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, contentType, gotAccept)
	assert.Equal(t, []string{"5"}, gotQuery["page[size]"])
	assert.Equal(t, []string{"2"}, gotQuery["page[number]"])
	assert.Equal(t, []string{"2024-01-01T00:00:00Z"}, gotQuery["updated_after"])
	assert.Equal(t, []string{"s1"}, gotQuery["filter[schedule_id]"])
}

func TestListRecords_OmitsEmptyUpdatedAfter(t *testing.T) {
	var gotQuery map[string][]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeRecords(w)
	}))

	_, err := client.ListRecords(context.Background(), "incidents", ListOptions{PageSize: 10, PageNumber: 1})

	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "updated_after")
}

func TestListRecords_DecodesRecords(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRecords(w,
			map[string]any{
				"id":   "inc-1",
				"type": "incidents",
				"attributes": map[string]any{
					"title":  "DB outage",
					"status": "resolved",
				},
				"relationships": map[string]any{
					"user": map[string]any{"data": map[string]any{"id": "u1"}},
				},
			},
		)
	}))

	records, err := client.ListRecords(context.Background(), "incidents", ListOptions{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "inc-1", records[0].ID)
	assert.Equal(t, "incidents", records[0].Type)
	assert.Equal(t, "DB outage", records[0].Attributes.StringOr("", "title"))

	userID, ok := records[0].RelatedID("user")
	assert.True(t, ok)
	assert.Equal(t, "u1", userID)
}

func TestGetRelated_SingleObjectData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		fmt.Fprint(w, `{"data": {"id": "sev-1", "type": "severities", "attributes": {"name": "SEV1"}}}`)
	}))

	records, err := client.GetRelated(context.Background(), "severities/sev-1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "sev-1", records[0].ID)
}

func TestGetRelated_NullData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": null}`)
	}))

	records, err := client.GetRelated(context.Background(), "incidents/x/events")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClient_APIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":[{"title":"Record not found"}]}`)
	}))

	_, err := client.ListRecords(context.Background(), "incidents", ListOptions{})

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Record not found")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_RateLimited(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.ListRecords(context.Background(), "alerts", ListOptions{})

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 0, rateErr.Remaining)
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	limiter := NewRateLimiter()
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "17")
	resp.Header.Set(HeaderRateLimit, "2000")
	resp.Header.Set(HeaderRateReset, "1700000000")

	limiter.UpdateFromResponse(resp)

	assert.Equal(t, 17, limiter.Remaining())
	assert.Equal(t, time.Unix(1700000000, 0), limiter.ResetTime())
}
