package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
)

func newSettingsStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLoadSyncConfig_Defaults(t *testing.T) {
	store := newSettingsStore(t)

	config := LoadSyncConfig(store)

	for _, entity := range domain.AllEntityTypes() {
		entityConfig, ok := config[entity]
		require.True(t, ok, "missing config for %s", entity)
		assert.True(t, entityConfig.Enabled)
		assert.Equal(t, domain.DefaultMaxItems, entityConfig.MaxItems)
		assert.Equal(t, domain.DefaultItemsPerPage, entityConfig.ItemsPerPage)
	}
	assert.True(t, config[domain.EntityIncidents].Enhancement.Enabled())
	assert.False(t, config[domain.EntityAlerts].Enhancement.Enabled())
}

func TestLoadSyncConfig_Overrides(t *testing.T) {
	store := newSettingsStore(t)
	require.NoError(t, store.Set("data_types.alerts.enabled", false))
	require.NoError(t, store.Set("data_types.incidents.max_items", 200))
	require.NoError(t, store.Set("data_types.incidents.items_per_page", 25))
	require.NoError(t, store.Set("data_types.incidents.enhanced_data.include_events", false))

	config := LoadSyncConfig(store)

	assert.False(t, config[domain.EntityAlerts].Enabled)
	assert.Equal(t, 200, config[domain.EntityIncidents].MaxItems)
	assert.Equal(t, 25, config[domain.EntityIncidents].ItemsPerPage)
	assert.False(t, config[domain.EntityIncidents].Enhancement.IncludeEvents)
	assert.True(t, config[domain.EntityIncidents].Enhancement.IncludeActionItems)

	// Untouched types keep their defaults
	assert.True(t, config[domain.EntitySchedules].Enabled)
}

func TestLoadGleanSettings_Defaults(t *testing.T) {
	store := newSettingsStore(t)
	require.NoError(t, store.Set("glean.api_host", "acme-be.glean.com"))
	require.NoError(t, store.Set("glean.api_token", "tok"))

	settings := LoadGleanSettings(store)

	assert.Equal(t, DefaultDatasourceName, settings.DatasourceName)
	assert.Equal(t, DefaultDisplayName, settings.DisplayName)
}

func TestGleanSettings_InstanceName(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		want    string
		wantErr bool
	}{
		{"backend host", "acme-be.glean.com", "acme", false},
		{"plain host", "acme.glean.com", "acme", false},
		{"with scheme", "https://acme-be.glean.com", "acme", false},
		{"empty host", "", "", true},
		{"bare suffix", "-be.glean.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := GleanSettings{APIHost: tt.host}
			got, err := settings.InstanceName()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRootlySettings(t *testing.T) {
	store := newSettingsStore(t)
	require.NoError(t, store.Set("rootly.api_base", "https://api.rootly.example"))
	require.NoError(t, store.Set("rootly.api_token", "secret"))

	settings := LoadRootlySettings(store)
	assert.Equal(t, "https://api.rootly.example", settings.APIBase)
	assert.Equal(t, "secret", settings.APIToken)
}
