package rootly

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// Ensure IncidentFetcher implements the interface.
var _ driven.RecordFetcher = (*IncidentFetcher)(nil)

// IncidentFetcher fetches incidents, optionally enriched with the event
// timeline, action items and severity definitions.
type IncidentFetcher struct {
	fetcher
	enhancement domain.IncidentEnhancement
}

// NewIncidentFetcher creates an incident fetcher.
func NewIncidentFetcher(client *Client, enhancement domain.IncidentEnhancement) *IncidentFetcher {
	return &IncidentFetcher{
		fetcher:     fetcher{client: client, entity: domain.EntityIncidents},
		enhancement: enhancement,
	}
}

// Fetch returns incidents with their enrichment bundles attached.
func (f *IncidentFetcher) Fetch(
	ctx context.Context, opts driven.FetchOptions,
) ([]domain.RawRecord, error) {
	incidents := f.fetchPaginated(ctx, "incidents", opts, nil)
	if len(incidents) == 0 || !f.enhancement.Enabled() {
		return incidents, nil
	}

	logger.Info("Enriching %d incidents with additional data...", len(incidents))

	// One shared severity lookup per sync, not one call per incident.
	severities := f.fetchSeverityDefinitions(ctx)

	enriched := make([]domain.RawRecord, 0, len(incidents))
	for _, incident := range incidents {
		if incident.ID == "" {
			logger.Warn("Incident missing ID, skipping enrichment")
			enriched = append(enriched, incident)
			continue
		}

		bundle := &domain.IncidentEnrichment{}
		if f.enhancement.IncludeEvents {
			bundle.Events = f.fetchRelated(ctx, fmt.Sprintf("incidents/%s/events", incident.ID))
		}
		if f.enhancement.IncludeActionItems {
			bundle.ActionItems = f.fetchRelated(ctx, fmt.Sprintf("incidents/%s/action_items", incident.ID))
		}
		if severityID, ok := incident.Attributes.String("severity", "data", "id"); ok {
			bundle.SeverityDetail = severities[severityID]
		}

		incident.Enrichment = &domain.Enrichment{Incident: bundle}
		enriched = append(enriched, incident)
	}

	logger.Info("Enriched %d incidents", len(enriched))
	return enriched, nil
}

// fetchSeverityDefinitions loads all severity definitions keyed by id.
// Degrades to an empty lookup on failure.
func (f *IncidentFetcher) fetchSeverityDefinitions(ctx context.Context) map[string]domain.Attrs {
	records, err := f.client.GetRelated(ctx, "severities")
	if err != nil {
		logger.Warn("Could not fetch severity definitions: %v", err)
		return nil
	}

	lookup := make(map[string]domain.Attrs, len(records))
	for _, record := range records {
		if record.ID != "" {
			lookup[record.ID] = recordAttrs(record)
		}
	}
	logger.Debug("Loaded %d severity definitions", len(lookup))
	return lookup
}
