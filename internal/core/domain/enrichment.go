package domain

// Enrichment bundles the supplementary lookups attached to a RawRecord.
// Exactly one of the per-entity bundles is set, matching the record's
// entity type. Fetchers build it alongside the record; mappers only read
// it. A nil bundle means enrichment was skipped or degraded to empty.
type Enrichment struct {
	Incident   *IncidentEnrichment
	Alert      *AlertEnrichment
	Schedule   *ScheduleEnrichment
	Escalation *EscalationEnrichment
}

// IncidentBundle returns the incident enrichment. Safe on a nil receiver.
func (e *Enrichment) IncidentBundle() *IncidentEnrichment {
	if e == nil {
		return nil
	}
	return e.Incident
}

// AlertBundle returns the alert enrichment. Safe on a nil receiver.
func (e *Enrichment) AlertBundle() *AlertEnrichment {
	if e == nil {
		return nil
	}
	return e.Alert
}

// ScheduleBundle returns the schedule enrichment. Safe on a nil receiver.
func (e *Enrichment) ScheduleBundle() *ScheduleEnrichment {
	if e == nil {
		return nil
	}
	return e.Schedule
}

// EscalationBundle returns the escalation enrichment. Safe on a nil receiver.
func (e *Enrichment) EscalationBundle() *EscalationEnrichment {
	if e == nil {
		return nil
	}
	return e.Escalation
}

// IncidentEnrichment carries the per-incident timeline and action items
// plus the matching severity definition from the shared severity lookup.
type IncidentEnrichment struct {
	// Events is the incident's event timeline.
	Events []Attrs

	// ActionItems are the incident's detailed action items.
	ActionItems []Attrs

	// SeverityDetail is the full severity definition for the
	// incident's severity id. Nil when the lookup had no match.
	SeverityDetail Attrs
}

// AlertEnrichment carries monitoring context for an alert. All fields
// degrade to empty when the supplementary endpoints are unavailable.
type AlertEnrichment struct {
	RoutingRules []Attrs
	Urgencies    []Attrs
	AlertGroups  []Attrs
	RecentEvents []Attrs
}

// ScheduleEnrichment carries rotation and shift context for an on-call
// schedule, plus a user lookup keyed by user id for resolving shift
// assignees to display names.
type ScheduleEnrichment struct {
	Rotations []Attrs
	Shifts    []RawRecord
	Overrides []RawRecord

	// Users maps user id to the user record's attributes.
	Users map[string]Attrs
}

// EscalationEnrichment carries the notification chain context for an
// escalation policy.
type EscalationEnrichment struct {
	Levels            []Attrs
	Paths             []Attrs
	NotificationRules []Attrs
}
