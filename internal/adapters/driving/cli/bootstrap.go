package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rootsync-cli/internal/adapters/driven/glean"
	"github.com/custodia-labs/rootsync-cli/internal/adapters/driven/storage/sqlite"
	rootlyapi "github.com/custodia-labs/rootsync-cli/internal/connectors/rootly"
	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/rootsync-cli/internal/core/services"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
	rootlymap "github.com/custodia-labs/rootsync-cli/internal/mappers/rootly"
)

// Package-level services, wired lazily per command and swappable in
// tests.
var (
	configStore driven.ConfigStore
	runStore    driven.RunStore
	searchIndex driven.SearchIndex
	syncService driving.SyncCoordinator

	datasourceName string
	datasourceDef  driven.DatasourceDefinition
)

// ensureConfigStore opens the TOML config store.
func ensureConfigStore() error {
	if configStore != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = store
	return nil
}

// ensureRunStore opens the run history database.
func ensureRunStore() error {
	if runStore != nil {
		return nil
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	runStore = store.RunStore()
	return nil
}

// ensureSyncServices wires the full sync pipeline: source client,
// fetchers, mappers, coordinator and index client. Credential checks
// happen here, before any network call.
func ensureSyncServices(ctx context.Context) error {
	if syncService != nil && searchIndex != nil {
		return nil
	}
	if err := ensureConfigStore(); err != nil {
		return err
	}

	rootlySettings := file.LoadRootlySettings(configStore)
	if rootlySettings.APIToken == "" {
		return fmt.Errorf("rootly API token not set, run 'rootsync auth rootly': %w",
			domain.ErrMissingCredentials)
	}

	gleanSettings := file.LoadGleanSettings(configStore)
	if gleanSettings.APIHost == "" || gleanSettings.APIToken == "" {
		return fmt.Errorf("glean API host or token not set, run 'rootsync config set glean.api_host <host>' and 'rootsync auth glean': %w",
			domain.ErrMissingCredentials)
	}

	client, err := rootlyapi.NewClient(ctx, rootlyapi.Config{
		BaseURL: rootlySettings.APIBase,
		Token:   rootlySettings.APIToken,
	})
	if err != nil {
		return fmt.Errorf("creating rootly client: %w", err)
	}

	instance, err := gleanSettings.InstanceName()
	if err != nil {
		return fmt.Errorf("resolving glean instance: %w", err)
	}
	logger.Debug("Using Glean instance %q at %s", instance, gleanSettings.APIHost)

	index, err := glean.NewClient(glean.Config{
		APIHost:  gleanSettings.APIHost,
		APIToken: gleanSettings.APIToken,
	})
	if err != nil {
		return fmt.Errorf("creating glean client: %w", err)
	}

	syncConfig := file.LoadSyncConfig(configStore)
	enhancement := syncConfig[domain.EntityIncidents].Enhancement

	fetchers := []driven.RecordFetcher{
		rootlyapi.NewIncidentFetcher(client, enhancement),
		rootlyapi.NewAlertFetcher(client),
		rootlyapi.NewScheduleFetcher(client),
		rootlyapi.NewEscalationPolicyFetcher(client),
		rootlyapi.NewRetrospectiveFetcher(client),
	}

	name := gleanSettings.DatasourceName
	mappers := []driven.DocumentMapper{
		rootlymap.NewIncidentMapper(name),
		rootlymap.NewAlertMapper(name),
		rootlymap.NewScheduleMapper(name),
		rootlymap.NewEscalationPolicyMapper(name),
		rootlymap.NewRetrospectiveMapper(name),
	}

	searchIndex = index
	syncService = services.NewSyncCoordinator(syncConfig, fetchers, mappers)
	datasourceName = name
	datasourceDef = glean.DatasourceDefinition(name, gleanSettings.DisplayName)
	return nil
}
