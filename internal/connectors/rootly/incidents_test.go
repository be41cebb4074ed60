package rootly

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

func incidentRecord(id, severityID string) map[string]any {
	attrs := map[string]any{"title": "outage", "status": "started"}
	if severityID != "" {
		attrs["severity"] = map[string]any{"data": map[string]any{"id": severityID}}
	}
	return map[string]any{"id": id, "type": "incidents", "attributes": attrs}
}

func TestIncidentFetcher_EnrichesRecords(t *testing.T) {
	severityCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/incidents", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page[number]") != "1" {
			writeRecords(w)
			return
		}
		writeRecords(w, incidentRecord("inc-1", "sev-1"), incidentRecord("inc-2", ""))
	})
	mux.HandleFunc("/severities", func(w http.ResponseWriter, r *http.Request) {
		severityCalls++
		writeRecords(w, map[string]any{
			"id": "sev-1", "type": "severities",
			"attributes": map[string]any{"name": "SEV1", "level": "critical"},
		})
	})
	mux.HandleFunc("/incidents/inc-1/events", func(w http.ResponseWriter, r *http.Request) {
		writeRecords(w, map[string]any{
			"id": "ev-1", "type": "incident_events",
			"attributes": map[string]any{"event": "Paged on-call", "occurred_at": "2024-03-01T10:00:00Z"},
		})
	})
	mux.HandleFunc("/incidents/inc-1/action_items", func(w http.ResponseWriter, r *http.Request) {
		writeRecords(w, map[string]any{
			"id": "ai-1", "type": "action_items",
			"attributes": map[string]any{"title": "Add alerting", "status": "open"},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeRecords(w)
	})

	client, _ := newTestClient(t, mux)
	f := NewIncidentFetcher(client, domain.IncidentEnhancement{
		IncludeEvents:      true,
		IncludeActionItems: true,
	})

	records, err := f.Fetch(context.Background(), driven.FetchOptions{ItemsPerPage: 10, MaxItems: 10})

	require.NoError(t, err)
	require.Len(t, records, 2)

	// Severity definitions are fetched once per sync, not per incident.
	assert.Equal(t, 1, severityCalls)

	first := records[0]
	require.NotNil(t, first.Enrichment)
	require.NotNil(t, first.Enrichment.Incident)
	require.Len(t, first.Enrichment.Incident.Events, 1)
	assert.Equal(t, "Paged on-call", first.Enrichment.Incident.Events[0].StringOr("", "event"))
	require.Len(t, first.Enrichment.Incident.ActionItems, 1)
	assert.Equal(t, "SEV1", first.Enrichment.Incident.SeverityDetail.StringOr("", "name"))

	// No severity reference → no severity detail, but still enriched.
	second := records[1]
	require.NotNil(t, second.Enrichment.Incident)
	assert.Nil(t, second.Enrichment.Incident.SeverityDetail)
}

func TestIncidentFetcher_EnhancementDisabled(t *testing.T) {
	var paths []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/incidents") && r.URL.Query().Get("page[number]") == "1" {
			writeRecords(w, incidentRecord("inc-1", "sev-1"))
			return
		}
		writeRecords(w)
	})

	client, _ := newTestClient(t, handler)
	f := NewIncidentFetcher(client, domain.IncidentEnhancement{})

	records, err := f.Fetch(context.Background(), driven.FetchOptions{ItemsPerPage: 10, MaxItems: 1})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Enrichment)
	for _, path := range paths {
		assert.NotContains(t, path, "severities")
	}
}

func TestIncidentFetcher_EnrichmentFailuresDegrade(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/incidents", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page[number]") != "1" {
			writeRecords(w)
			return
		}
		writeRecords(w, incidentRecord("inc-1", "sev-1"))
	})
	// Every sub-resource lookup fails.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, mux)
	f := NewIncidentFetcher(client, domain.IncidentEnhancement{
		IncludeEvents:      true,
		IncludeActionItems: true,
	})

	records, err := f.Fetch(context.Background(), driven.FetchOptions{ItemsPerPage: 10, MaxItems: 1})

	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Enrichment.Incident)
	assert.Empty(t, records[0].Enrichment.Incident.Events)
	assert.Empty(t, records[0].Enrichment.Incident.ActionItems)
	assert.Nil(t, records[0].Enrichment.Incident.SeverityDetail)
}
