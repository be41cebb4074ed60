package glean

import (
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// Document categories used by the datasource declaration.
const (
	CategoryTickets       = "TICKETS"
	CategoryUncategorized = "UNCATEGORIZED"
)

// viewURLRegex matches the view URLs the mappers emit, including the
// deterministic fallbacks.
const viewURLRegex = "https://rootly.com/account/(incidents|alerts|schedules|escalation_policies|retrospectives)/.*"

// DatasourceDefinition builds the declaration for a Rootly-backed
// datasource with all supported object types.
func DatasourceDefinition(name, displayName string) driven.DatasourceDefinition {
	return driven.DatasourceDefinition{
		Name:        name,
		DisplayName: displayName,
		Category:    CategoryTickets,
		URLRegex:    viewURLRegex,
		ObjectDefinitions: []driven.ObjectDefinition{
			{Name: "Incident", DisplayLabel: "Incident", DocCategory: CategoryTickets, Summarizable: true},
			{Name: "Alert", DisplayLabel: "Alert", DocCategory: CategoryTickets, Summarizable: true},
			{Name: "Schedule", DisplayLabel: "Schedule", DocCategory: CategoryUncategorized, Summarizable: true},
			{Name: "EscalationPolicy", DisplayLabel: "Escalation Policy", DocCategory: CategoryUncategorized, Summarizable: true},
			{Name: "Retrospective", DisplayLabel: "Retrospective", DocCategory: CategoryUncategorized, Summarizable: true},
		},
	}
}
