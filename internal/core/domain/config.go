package domain

// Default fetch limits applied when configuration does not override them.
const (
	DefaultMaxItems     = 50
	DefaultItemsPerPage = 10
)

// IncidentEnhancement selects which supplementary incident lookups the
// fetcher performs.
type IncidentEnhancement struct {
	// IncludeEvents fetches the per-incident event timeline.
	IncludeEvents bool

	// IncludeActionItems fetches the per-incident action items.
	IncludeActionItems bool
}

// Enabled reports whether any enhancement lookup is requested.
func (e IncidentEnhancement) Enabled() bool {
	return e.IncludeEvents || e.IncludeActionItems
}

// EntityConfig is the per-entity-type sync configuration. Loaded once at
// start and immutable for the run.
type EntityConfig struct {
	// Enabled gates the whole pipeline for this entity type.
	Enabled bool

	// MaxItems caps the number of records fetched. Zero means no cap.
	MaxItems int

	// ItemsPerPage is the page size requested from the source API.
	ItemsPerPage int

	// Enhancement applies to incidents only.
	Enhancement IncidentEnhancement
}

// SyncConfig maps each entity type to its configuration.
type SyncConfig map[EntityType]EntityConfig

// DefaultSyncConfig returns a config with every entity type enabled and
// default limits, incident enhancement fully on.
func DefaultSyncConfig() SyncConfig {
	cfg := make(SyncConfig, len(AllEntityTypes()))
	for _, entity := range AllEntityTypes() {
		entityCfg := EntityConfig{
			Enabled:      true,
			MaxItems:     DefaultMaxItems,
			ItemsPerPage: DefaultItemsPerPage,
		}
		if entity == EntityIncidents {
			entityCfg.Enhancement = IncidentEnhancement{
				IncludeEvents:      true,
				IncludeActionItems: true,
			}
		}
		cfg[entity] = entityCfg
	}
	return cfg
}

// EnabledTypes returns the enabled entity types in sync order.
func (c SyncConfig) EnabledTypes() []EntityType {
	var enabled []EntityType
	for _, entity := range AllEntityTypes() {
		if c[entity].Enabled {
			enabled = append(enabled, entity)
		}
	}
	return enabled
}
