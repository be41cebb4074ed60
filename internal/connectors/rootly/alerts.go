package rootly

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// Ensure AlertFetcher implements the interface.
var _ driven.RecordFetcher = (*AlertFetcher)(nil)

// AlertFetcher fetches alerts enriched with monitoring context: routing
// rules, urgency levels, alert groups and recent per-alert events. Each
// lookup degrades to empty context when its endpoint is unavailable.
type AlertFetcher struct {
	fetcher
}

// NewAlertFetcher creates an alert fetcher.
func NewAlertFetcher(client *Client) *AlertFetcher {
	return &AlertFetcher{
		fetcher: fetcher{client: client, entity: domain.EntityAlerts},
	}
}

// Fetch returns alerts with their monitoring context attached.
func (f *AlertFetcher) Fetch(
	ctx context.Context, opts driven.FetchOptions,
) ([]domain.RawRecord, error) {
	alerts := f.fetchPaginated(ctx, "alerts", opts, nil)
	if len(alerts) == 0 {
		return alerts, nil
	}

	logger.Info("Enriching %d alerts with monitoring context...", len(alerts))

	// Shared lookups, fetched once per sync.
	routingRules := f.fetchRelated(ctx, "alert_routing_rules")
	urgencies := f.fetchRelated(ctx, "alert_urgencies")
	alertGroups := f.fetchRelated(ctx, "alert_groups")

	enriched := make([]domain.RawRecord, 0, len(alerts))
	for _, alert := range alerts {
		bundle := &domain.AlertEnrichment{
			RoutingRules: routingRules,
			Urgencies:    urgencies,
			AlertGroups:  alertGroups,
		}
		if alert.ID != "" {
			bundle.RecentEvents = f.fetchRelated(ctx, fmt.Sprintf("alerts/%s/events", alert.ID))
		}

		alert.Enrichment = &domain.Enrichment{Alert: bundle}
		enriched = append(enriched, alert)
	}

	return enriched, nil
}
