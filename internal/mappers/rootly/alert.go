package rootly

import (
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// Alert bodies cap each monitoring context section so noisy sources do
// not swamp the document.
const maxAlertContextItems = 3

var _ driven.DocumentMapper = (*AlertMapper)(nil)

// AlertMapper maps alerts to documents.
type AlertMapper struct {
	base
}

// NewAlertMapper creates an alert mapper for the datasource.
func NewAlertMapper(datasource string) *AlertMapper {
	return &AlertMapper{base: base{entity: domain.EntityAlerts, datasource: datasource}}
}

// Map converts an alert record to a document.
func (m *AlertMapper) Map(record domain.RawRecord) (*domain.Document, error) {
	attrs := record.Attributes
	if attrs == nil {
		return nil, fmt.Errorf("alert %s: %w", record.ID, domain.ErrMissingAttributes)
	}

	doc := m.newDocument(record, fmt.Sprintf("[ALERT] %s", alertTitle(record)))

	if status, ok := attrs.String("status"); ok {
		doc.Status = status
		doc.AddTag("alert_status", status)
	}
	if priority := attrs.StringOr(attrs.StringOr("", "severity"), "priority"); priority != "" {
		doc.AddTag("priority", priority)
	}
	if source := attrs.StringOr(attrs.StringOr("", "source_type"), "source"); source != "" {
		doc.AddTag("source", source)
	}

	m.buildBody(&doc, record, attrs)
	m.applyAuthor(&doc, attrs)
	m.applyTimestamps(&doc, attrs)

	return &doc, nil
}

func (m *AlertMapper) buildBody(doc *domain.Document, record domain.RawRecord, attrs domain.Attrs) {
	var body bodyBuilder
	body.line("Alert: %s", alertTitle(record))
	if status, ok := attrs.String("status"); ok {
		body.line("Status: %s", status)
	}
	if priority, ok := attrs.String("priority"); ok {
		body.line("Priority: %s", priority)
	}
	if source, ok := attrs.String("source"); ok {
		body.line("Source: %s", source)
	}
	if summary, ok := attrs.String("summary"); ok {
		setSummary(doc, summary)
	}
	if description := attrs.StringOr(attrs.StringOr("", "message"), "description"); description != "" {
		body.line("\nDescription:\n%s", description)
		if doc.Summary == nil {
			setSummary(doc, description)
		}
	}
	if details, ok := attrs.String("details"); ok {
		body.line("\nDetails:\n%s", details)
	}

	m.addMonitoringContext(&body, record.Enrichment.AlertBundle())

	doc.Body = body.content()
}

// addMonitoringContext renders the routing, urgency and grouping context
// around an alert, each section capped at maxAlertContextItems.
func (m *AlertMapper) addMonitoringContext(body *bodyBuilder, enrichment *domain.AlertEnrichment) {
	if enrichment == nil {
		return
	}

	if len(enrichment.RoutingRules) > 0 {
		body.section("Routing Rules")
		for _, rule := range capAttrs(enrichment.RoutingRules, maxAlertContextItems) {
			body.line("• %s", rule.StringOr("Unnamed rule", "name"))
		}
	}

	if len(enrichment.Urgencies) > 0 {
		body.section("Urgency Levels")
		for _, urgency := range capAttrs(enrichment.Urgencies, maxAlertContextItems) {
			name := urgency.StringOr("Unnamed", "name")
			if level, ok := urgency.String("level"); ok {
				body.line("• %s (%s)", name, level)
			} else {
				body.line("• %s", name)
			}
		}
	}

	if len(enrichment.AlertGroups) > 0 {
		body.section("Alert Groups")
		for _, group := range capAttrs(enrichment.AlertGroups, maxAlertContextItems) {
			body.line("• %s", group.StringOr("Unnamed group", "name"))
		}
	}

	if len(enrichment.RecentEvents) > 0 {
		body.section("Recent Alert Events")
		for _, event := range capAttrs(enrichment.RecentEvents, maxAlertContextItems) {
			text, ok := event.String("event")
			if !ok {
				continue
			}
			body.line("[%s] %s", truncate(event.StringOr("", "created_at"), 16), text)
		}
	}
}

// alertTitle picks the best available label for an alert, walking the
// fields monitoring integrations actually populate before settling on
// the bare id.
func alertTitle(record domain.RawRecord) string {
	attrs := record.Attributes
	for _, field := range [][]string{
		{"summary"},
		{"title"},
		{"name"},
		{"data", "title"},
		{"data", "summary"},
	} {
		if value, ok := attrs.String(field...); ok {
			return value
		}
	}
	if description, ok := attrs.String("description"); ok {
		if len(description) > 50 {
			return description[:50] + "..."
		}
		return description
	}
	return fmt.Sprintf("Alert %s", record.ID)
}
