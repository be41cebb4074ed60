package rootly

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// Limits on how much rota detail is rendered into a schedule body.
const (
	maxScheduleShifts    = 10
	maxScheduleOverrides = 3
)

var _ driven.DocumentMapper = (*ScheduleMapper)(nil)

// ScheduleMapper maps on-call schedules to documents.
type ScheduleMapper struct {
	base
}

// NewScheduleMapper creates a schedule mapper for the datasource.
func NewScheduleMapper(datasource string) *ScheduleMapper {
	return &ScheduleMapper{base: base{entity: domain.EntitySchedules, datasource: datasource}}
}

// Map converts a schedule record to a document.
func (m *ScheduleMapper) Map(record domain.RawRecord) (*domain.Document, error) {
	attrs := record.Attributes
	if attrs == nil {
		return nil, fmt.Errorf("schedule %s: %w", record.ID, domain.ErrMissingAttributes)
	}

	name := attrs.StringOr("Unnamed Schedule", "name")
	doc := m.newDocument(record, fmt.Sprintf("[SCHEDULE] %s", name))

	if status, ok := attrs.String("status"); ok {
		doc.Status = status
		doc.AddTag("status", status)
	}
	if scheduleType, ok := attrs.String("schedule_type"); ok {
		doc.AddTag("schedule_type", scheduleType)
	}
	if team, ok := attrs.String("team", "data", "attributes", "name"); ok {
		doc.AddTag("team", team)
	}
	if owner, ok := attrs.String("owner_user", "data", "attributes", "full_name"); ok {
		doc.AddTag("owner", owner)
	}

	m.buildBody(&doc, record, attrs, name)
	m.applyAuthor(&doc, attrs)
	m.applyTimestamps(&doc, attrs)

	return &doc, nil
}

func (m *ScheduleMapper) buildBody(
	doc *domain.Document, record domain.RawRecord, attrs domain.Attrs, name string,
) {
	var body bodyBuilder
	body.line("Schedule: %s", name)
	if description, ok := attrs.String("description"); ok {
		body.line("\nDescription:\n%s", description)
		setSummary(doc, description)
	}
	if scheduleType, ok := attrs.String("schedule_type"); ok {
		body.line("Type: %s", scheduleType)
	}
	if timezone := attrs.StringOr(attrs.StringOr("", "time_zone"), "timezone"); timezone != "" {
		body.line("Timezone: %s", timezone)
	}

	enrichment := record.Enrichment.ScheduleBundle()
	m.addRotations(&body, enrichment)
	m.addShifts(&body, enrichment)
	m.addOverrides(&body, enrichment)

	doc.Body = body.content()
}

func (m *ScheduleMapper) addRotations(body *bodyBuilder, enrichment *domain.ScheduleEnrichment) {
	if enrichment == nil || len(enrichment.Rotations) == 0 {
		return
	}

	body.section("Rotations")
	for _, rotation := range enrichment.Rotations {
		name := rotation.StringOr("Unnamed rotation", "name")
		if kind, ok := rotation.String("schedule_rotationable_type"); ok {
			body.line("• %s (%s)", name, kind)
		} else {
			body.line("• %s", name)
		}
	}
}

// addShifts renders upcoming shifts with the assignee resolved to a
// display name, capped at maxScheduleShifts entries.
func (m *ScheduleMapper) addShifts(body *bodyBuilder, enrichment *domain.ScheduleEnrichment) {
	if enrichment == nil || len(enrichment.Shifts) == 0 {
		return
	}

	body.section("Upcoming Shifts")
	shifts := enrichment.Shifts
	if len(shifts) > maxScheduleShifts {
		shifts = shifts[:maxScheduleShifts]
	}
	for _, shift := range shifts {
		body.line("• %s: %s to %s",
			shiftUser(shift, enrichment.Users),
			truncate(shift.Attributes.StringOr("", "starts_at"), 16),
			truncate(shift.Attributes.StringOr("", "ends_at"), 16))
	}
}

func (m *ScheduleMapper) addOverrides(body *bodyBuilder, enrichment *domain.ScheduleEnrichment) {
	if enrichment == nil || len(enrichment.Overrides) == 0 {
		return
	}

	body.section("Overrides")
	overrides := enrichment.Overrides
	if len(overrides) > maxScheduleOverrides {
		overrides = overrides[:maxScheduleOverrides]
	}
	for _, override := range overrides {
		body.line("• %s: %s to %s",
			shiftUser(override, enrichment.Users),
			truncate(override.Attributes.StringOr("", "starts_at"), 16),
			truncate(override.Attributes.StringOr("", "ends_at"), 16))
	}
}

// shiftUser resolves a shift's assignee to a human-readable label,
// trying progressively weaker user fields before giving up to the id.
func shiftUser(shift domain.RawRecord, users map[string]domain.Attrs) string {
	userID, ok := shift.RelatedID("user")
	if !ok {
		return "Unassigned"
	}

	user, ok := users[userID]
	if !ok {
		return fmt.Sprintf("User %s", userID)
	}

	if name, ok := user.String("name"); ok {
		return name
	}
	if name, ok := user.String("full_name"); ok {
		return name
	}
	first := user.StringOr("", "first_name")
	last := user.StringOr("", "last_name")
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}
	if email, ok := user.String("email"); ok {
		if local, _, found := strings.Cut(email, "@"); found && local != "" {
			return local
		}
		return email
	}
	return fmt.Sprintf("User %s", userID)
}
