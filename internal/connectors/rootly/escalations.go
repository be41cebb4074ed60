package rootly

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// Ensure EscalationPolicyFetcher implements the interface.
var _ driven.RecordFetcher = (*EscalationPolicyFetcher)(nil)

// EscalationPolicyFetcher fetches escalation policies enriched with
// their levels, paths and notification rules. Each lookup degrades to
// empty context when its endpoint is unavailable.
type EscalationPolicyFetcher struct {
	fetcher
}

// NewEscalationPolicyFetcher creates an escalation policy fetcher.
func NewEscalationPolicyFetcher(client *Client) *EscalationPolicyFetcher {
	return &EscalationPolicyFetcher{
		fetcher: fetcher{client: client, entity: domain.EntityEscalationPolicies},
	}
}

// Fetch returns escalation policies with their notification chain
// context attached.
func (f *EscalationPolicyFetcher) Fetch(
	ctx context.Context, opts driven.FetchOptions,
) ([]domain.RawRecord, error) {
	policies := f.fetchPaginated(ctx, "escalation_policies", opts, nil)
	if len(policies) == 0 {
		return policies, nil
	}

	logger.Info("Enriching %d escalation policies with notification chains...", len(policies))

	enriched := make([]domain.RawRecord, 0, len(policies))
	for _, policy := range policies {
		if policy.ID == "" {
			enriched = append(enriched, policy)
			continue
		}

		base := fmt.Sprintf("escalation_policies/%s", policy.ID)
		policy.Enrichment = &domain.Enrichment{
			Escalation: &domain.EscalationEnrichment{
				Levels:            f.fetchRelated(ctx, base+"/escalation_levels"),
				Paths:             f.fetchRelated(ctx, base+"/escalation_paths"),
				NotificationRules: f.fetchRelated(ctx, base+"/notification_rules"),
			},
		}
		enriched = append(enriched, policy)
	}

	return enriched, nil
}
