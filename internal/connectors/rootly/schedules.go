package rootly

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// UserLookupPageSize is the page size of the single batched user lookup.
const UserLookupPageSize = 100

// Ensure ScheduleFetcher implements the interface.
var _ driven.RecordFetcher = (*ScheduleFetcher)(nil)

// ScheduleFetcher fetches on-call schedules enriched with rotations,
// shifts, override shifts and a batched user lookup for resolving shift
// assignees.
type ScheduleFetcher struct {
	fetcher
}

// NewScheduleFetcher creates a schedule fetcher.
func NewScheduleFetcher(client *Client) *ScheduleFetcher {
	return &ScheduleFetcher{
		fetcher: fetcher{client: client, entity: domain.EntitySchedules},
	}
}

// Fetch returns schedules with their enrichment bundles attached.
func (f *ScheduleFetcher) Fetch(
	ctx context.Context, opts driven.FetchOptions,
) ([]domain.RawRecord, error) {
	schedules := f.fetchPaginated(ctx, "schedules", opts, nil)
	if len(schedules) == 0 {
		return schedules, nil
	}

	logger.Info("Enriching %d schedules with rotation and shift data...", len(schedules))

	enriched := make([]domain.RawRecord, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.ID == "" {
			enriched = append(enriched, schedule)
			continue
		}

		bundle := &domain.ScheduleEnrichment{
			Rotations: f.fetchRelated(ctx, fmt.Sprintf("schedules/%s/schedule_rotations", schedule.ID)),
			Shifts:    f.fetchShifts(ctx, schedule.ID, false),
			Overrides: f.fetchShifts(ctx, schedule.ID, true),
		}
		bundle.Users = f.lookupUsers(ctx, referencedUserIDs(bundle.Shifts, bundle.Overrides))

		schedule.Enrichment = &domain.Enrichment{Schedule: bundle}
		enriched = append(enriched, schedule)
	}

	return enriched, nil
}

// fetchShifts lists shifts for one schedule, optionally only overrides.
// Degrades to nil on failure.
func (f *ScheduleFetcher) fetchShifts(
	ctx context.Context, scheduleID string, overrides bool,
) []domain.RawRecord {
	filters := map[string]string{"schedule_id": scheduleID}
	if overrides {
		filters["is_override"] = "true"
	}

	shifts, err := f.client.ListRecords(ctx, "shifts", ListOptions{
		PageSize: UserLookupPageSize,
		Filters:  filters,
	})
	if err != nil {
		logger.Warn("Could not fetch shifts for schedule %s (overrides=%t): %v",
			scheduleID, overrides, err)
		return nil
	}
	return shifts
}

// lookupUsers resolves the referenced user ids with a single batched
// users call rather than one fetch per shift. IDs missing from the page
// are logged but not fatal.
func (f *ScheduleFetcher) lookupUsers(
	ctx context.Context, userIDs map[string]struct{},
) map[string]domain.Attrs {
	if len(userIDs) == 0 {
		return nil
	}

	records, err := f.client.ListRecords(ctx, "users", ListOptions{PageSize: UserLookupPageSize})
	if err != nil {
		logger.Warn("Could not fetch users for schedule enrichment: %v", err)
		return nil
	}

	users := make(map[string]domain.Attrs, len(records))
	for _, record := range records {
		if record.ID != "" {
			users[record.ID] = recordAttrs(record)
		}
	}

	for id := range userIDs {
		if _, ok := users[id]; !ok {
			logger.Warn("Referenced user %s not found in user lookup", id)
		}
	}
	return users
}

// referencedUserIDs collects the union of user ids referenced by shifts
// and overrides.
func referencedUserIDs(shiftSets ...[]domain.RawRecord) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, shifts := range shiftSets {
		for _, shift := range shifts {
			if id, ok := shift.RelatedID("user"); ok {
				ids[id] = struct{}{}
			}
		}
	}
	return ids
}
