package domain

import "fmt"

// ViewURLBase is the account-facing base URL used when the source API
// returns no view URL for a record.
const ViewURLBase = "https://rootly.com/account"

// EntityType identifies one of the synced record kinds.
type EntityType string

// The five entity types, in sync order.
const (
	EntityIncidents          EntityType = "incidents"
	EntityAlerts             EntityType = "alerts"
	EntitySchedules          EntityType = "schedules"
	EntityEscalationPolicies EntityType = "escalation_policies"
	EntityRetrospectives     EntityType = "retrospectives"
)

// AllEntityTypes returns the entity types in their fixed sync order.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityIncidents,
		EntityAlerts,
		EntitySchedules,
		EntityEscalationPolicies,
		EntityRetrospectives,
	}
}

// ParseEntityType converts a string to an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	for _, entity := range AllEntityTypes() {
		if string(entity) == s {
			return entity, nil
		}
	}
	return "", fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, s)
}

// ObjectType returns the index object type tag for this entity.
func (e EntityType) ObjectType() string {
	switch e {
	case EntityIncidents:
		return "Incident"
	case EntityAlerts:
		return "Alert"
	case EntitySchedules:
		return "Schedule"
	case EntityEscalationPolicies:
		return "EscalationPolicy"
	case EntityRetrospectives:
		return "Retrospective"
	default:
		return string(e)
	}
}

// Endpoint returns the source API collection path for this entity.
// Retrospectives live under the legacy post_mortems path.
func (e EntityType) Endpoint() string {
	if e == EntityRetrospectives {
		return "post_mortems"
	}
	return string(e)
}

// DefaultViewURL builds the deterministic fallback view URL for a record
// of this entity type.
func (e EntityType) DefaultViewURL(id string) string {
	return fmt.Sprintf("%s/%s/%s", ViewURLBase, string(e), id)
}

func (e EntityType) String() string {
	return string(e)
}
