package file

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// Default datasource identity when not configured.
const (
	DefaultDatasourceName = "rootly"
	DefaultDisplayName    = "Rootly"
)

// RootlySettings holds the source API connection settings.
type RootlySettings struct {
	APIBase  string
	APIToken string
}

// GleanSettings holds the index API connection and datasource identity.
type GleanSettings struct {
	APIHost        string
	APIToken       string
	DatasourceName string
	DisplayName    string
}

// InstanceName derives the Glean instance name from the API host: the
// first hostname label, with a "-be" backend suffix stripped.
func (g GleanSettings) InstanceName() (string, error) {
	host := strings.TrimPrefix(strings.TrimPrefix(g.APIHost, "https://"), "http://")
	instance, _, _ := strings.Cut(host, ".")
	instance, _, _ = strings.Cut(instance, "-be")
	if instance == "" {
		return "", fmt.Errorf("could not derive instance name from host %q: %w",
			g.APIHost, domain.ErrInvalidInput)
	}
	return instance, nil
}

// LoadRootlySettings reads the Rootly connection settings.
func LoadRootlySettings(store driven.ConfigStore) RootlySettings {
	return RootlySettings{
		APIBase:  store.GetString("rootly.api_base"),
		APIToken: store.GetString("rootly.api_token"),
	}
}

// LoadGleanSettings reads the Glean connection settings, falling back
// to the default datasource identity.
func LoadGleanSettings(store driven.ConfigStore) GleanSettings {
	settings := GleanSettings{
		APIHost:        store.GetString("glean.api_host"),
		APIToken:       store.GetString("glean.api_token"),
		DatasourceName: store.GetString("glean.datasource_name"),
		DisplayName:    store.GetString("glean.display_name"),
	}
	if settings.DatasourceName == "" {
		settings.DatasourceName = DefaultDatasourceName
	}
	if settings.DisplayName == "" {
		settings.DisplayName = DefaultDisplayName
	}
	return settings
}

// LoadSyncConfig builds the per-type sync configuration, applying any
// data_types.* overrides on top of the defaults.
func LoadSyncConfig(store driven.ConfigStore) domain.SyncConfig {
	config := domain.DefaultSyncConfig()

	for entity, entityConfig := range config {
		prefix := "data_types." + string(entity) + "."

		if store.Has(prefix + "enabled") {
			entityConfig.Enabled = store.GetBool(prefix + "enabled")
		}
		if store.Has(prefix + "max_items") {
			entityConfig.MaxItems = store.GetInt(prefix + "max_items")
		}
		if store.Has(prefix + "items_per_page") {
			entityConfig.ItemsPerPage = store.GetInt(prefix + "items_per_page")
		}
		if store.Has(prefix + "enhanced_data.include_events") {
			entityConfig.Enhancement.IncludeEvents = store.GetBool(prefix + "enhanced_data.include_events")
		}
		if store.Has(prefix + "enhanced_data.include_action_items") {
			entityConfig.Enhancement.IncludeActionItems = store.GetBool(prefix + "enhanced_data.include_action_items")
		}

		config[entity] = entityConfig
	}

	return config
}
