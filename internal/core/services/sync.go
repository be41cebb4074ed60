package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// Ensure SyncCoordinator implements the interface.
var _ driving.SyncCoordinator = (*SyncCoordinator)(nil)

// pipeline bundles the capabilities for one entity type.
type pipeline struct {
	entity  domain.EntityType
	fetcher driven.RecordFetcher
	mapper  driven.DocumentMapper
	config  domain.EntityConfig
}

// SyncCoordinator runs the per-entity-type pipelines sequentially and
// aggregates their output. Entity-type pipelines are isolated: a failure
// in one is recorded in the report and never stops the others.
type SyncCoordinator struct {
	pipelines []pipeline
}

// NewSyncCoordinator builds a coordinator from the per-type config and
// the registered fetchers and mappers. Types without both a fetcher and
// a mapper get an error result when enabled.
func NewSyncCoordinator(
	config domain.SyncConfig,
	fetchers []driven.RecordFetcher,
	mappers []driven.DocumentMapper,
) *SyncCoordinator {
	fetcherByType := make(map[domain.EntityType]driven.RecordFetcher, len(fetchers))
	for _, f := range fetchers {
		fetcherByType[f.EntityType()] = f
	}
	mapperByType := make(map[domain.EntityType]driven.DocumentMapper, len(mappers))
	for _, m := range mappers {
		mapperByType[m.EntityType()] = m
	}

	coordinator := &SyncCoordinator{}
	for _, entity := range domain.AllEntityTypes() {
		coordinator.pipelines = append(coordinator.pipelines, pipeline{
			entity:  entity,
			fetcher: fetcherByType[entity],
			mapper:  mapperByType[entity],
			config:  config[entity],
		})
	}
	return coordinator
}

// EnabledTypes lists the entity types configuration enables.
func (c *SyncCoordinator) EnabledTypes() []domain.EntityType {
	var enabled []domain.EntityType
	for _, p := range c.pipelines {
		if p.config.Enabled {
			enabled = append(enabled, p.entity)
		}
	}
	return enabled
}

// SyncAll runs every configured entity type and deduplicates the
// combined output by document id, keeping the first occurrence.
func (c *SyncCoordinator) SyncAll(
	ctx context.Context, updatedAfter string,
) (*domain.SyncReport, []domain.Document, error) {
	report := &domain.SyncReport{
		Results: make(map[domain.EntityType]domain.SyncResult, len(c.pipelines)),
	}
	var collected []domain.Document

	for _, p := range c.pipelines {
		if !p.config.Enabled {
			logger.Info("Skipping %s (disabled in configuration)", p.entity)
			report.Results[p.entity] = domain.SyncResult{
				Status: domain.SyncSkipped,
				Reason: domain.SkipReasonDisabled,
			}
			continue
		}

		logger.Section(fmt.Sprintf("Sync %s", p.entity))
		docs, err := c.syncType(ctx, p, updatedAfter)
		if err != nil {
			logger.Warn("Sync for %s failed: %v", p.entity, err)
			report.Results[p.entity] = domain.SyncResult{
				Status: domain.SyncError,
				Error:  err.Error(),
			}
			continue
		}

		collected = append(collected, docs...)
		report.Results[p.entity] = domain.SyncResult{
			Status:    domain.SyncSuccess,
			Documents: len(docs),
		}
		logger.Info("Synced %d %s documents", len(docs), p.entity)
	}

	unique := c.deduplicate(collected, report)
	report.TotalDocuments = len(unique)
	logger.Info("Sync produced %d unique documents (%d duplicates removed)",
		report.TotalDocuments, report.DuplicatesRemoved)

	return report, unique, nil
}

// syncType runs fetch → map for a single entity type. Individual record
// mapping failures are logged and excluded without failing the type.
func (c *SyncCoordinator) syncType(
	ctx context.Context, p pipeline, updatedAfter string,
) ([]domain.Document, error) {
	if p.fetcher == nil || p.mapper == nil {
		return nil, fmt.Errorf("%w for %s", domain.ErrNoPipeline, p.entity)
	}

	logger.Info("Fetching %s (max %d, page size %d)...",
		p.entity, p.config.MaxItems, p.config.ItemsPerPage)
	records, err := p.fetcher.Fetch(ctx, driven.FetchOptions{
		UpdatedAfter: updatedAfter,
		MaxItems:     p.config.MaxItems,
		ItemsPerPage: p.config.ItemsPerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.entity, err)
	}

	if len(records) == 0 {
		logger.Info("No %s records fetched", p.entity)
		return nil, nil
	}

	logger.Info("Mapping %d %s records to documents...", len(records), p.entity)
	docs := make([]domain.Document, 0, len(records))
	for _, record := range records {
		doc, err := p.mapper.Map(record)
		if err != nil {
			logger.Warn("Skipping %s record %s: %v", p.entity, record.ID, err)
			continue
		}
		docs = append(docs, *doc)
	}

	logger.Info("Mapped %d/%d %s records", len(docs), len(records), p.entity)
	return docs, nil
}

// deduplicate drops documents whose id already appeared, preserving
// first-seen order.
func (c *SyncCoordinator) deduplicate(
	docs []domain.Document, report *domain.SyncReport,
) []domain.Document {
	seen := make(map[string]struct{}, len(docs))
	unique := make([]domain.Document, 0, len(docs))

	for _, doc := range docs {
		if _, dup := seen[doc.ID]; dup {
			report.DuplicatesRemoved++
			logger.Warn("Removed duplicate document: id=%s type=%s title=%q",
				doc.ID, doc.ObjectType, doc.Title)
			continue
		}
		seen[doc.ID] = struct{}{}
		unique = append(unique, doc)
	}

	return unique
}
