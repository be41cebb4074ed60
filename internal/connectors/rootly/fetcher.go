package rootly

import (
	"context"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// MaxPages is the hard safety cap on pages walked per fetch, guarding
// against a misbehaving or misconfigured endpoint.
const MaxPages = 10

// fetcher is the shared pagination base embedded by the per-entity
// fetchers.
type fetcher struct {
	client *Client
	entity domain.EntityType
}

// EntityType identifies the entity this fetcher serves.
func (f *fetcher) EntityType() domain.EntityType {
	return f.entity
}

// fetchPaginated walks a collection endpoint page by page, starting at
// page 1. It stops on an empty page, when MaxItems is reached, at the
// MaxPages safety cap, or on a page-level failure.
//
// A page failure is treated as end-of-data: it is logged and whatever
// was accumulated so far is returned. Partial sync beats total failure.
func (f *fetcher) fetchPaginated(
	ctx context.Context, endpoint string, opts driven.FetchOptions, filters map[string]string,
) []domain.RawRecord {
	pageSize := opts.ItemsPerPage
	if pageSize <= 0 {
		pageSize = domain.DefaultItemsPerPage
	}

	var all []domain.RawRecord
	for page := 1; page <= MaxPages; page++ {
		if opts.MaxItems > 0 && len(all) >= opts.MaxItems {
			logger.Info("Reached max items limit (%d) for %s. Stopping fetch.", opts.MaxItems, endpoint)
			break
		}

		// Shrink the last page to exactly the remaining slots.
		size := pageSize
		if opts.MaxItems > 0 {
			if remaining := opts.MaxItems - len(all); remaining < size {
				size = remaining
			}
		}

		logger.Info("Fetching page %d from %s...", page, endpoint)
		records, err := f.client.ListRecords(ctx, endpoint, ListOptions{
			PageSize:     size,
			PageNumber:   page,
			UpdatedAfter: opts.UpdatedAfter,
			Filters:      filters,
		})
		if err != nil {
			logger.Warn("Error fetching page %d from %s: %v", page, endpoint, err)
			break
		}
		if len(records) == 0 {
			logger.Info("No items found on page %d of %s. Stopping fetch.", page, endpoint)
			break
		}

		all = append(all, records...)
		logger.Info("Fetched %d items from page %d. Total: %d", len(records), page, len(all))
	}

	if opts.MaxItems > 0 && len(all) > opts.MaxItems {
		all = all[:opts.MaxItems]
	}
	logger.Info("Total %d items fetched from %s", len(all), endpoint)
	return all
}

// fetchRelated fetches a sub-resource, degrading to nil on failure.
func (f *fetcher) fetchRelated(ctx context.Context, path string) []domain.Attrs {
	records, err := f.client.GetRelated(ctx, path)
	if err != nil {
		logger.Warn("Could not fetch %s: %v", path, err)
		return nil
	}
	attrs := make([]domain.Attrs, 0, len(records))
	for _, record := range records {
		attrs = append(attrs, recordAttrs(record))
	}
	return attrs
}

// recordAttrs flattens a record into its attributes with the id kept
// alongside, so mappers can render sub-resources without carrying the
// full record.
func recordAttrs(record domain.RawRecord) domain.Attrs {
	attrs := domain.Attrs{"id": record.ID}
	for key, value := range record.Attributes {
		attrs[key] = value
	}
	return attrs
}
