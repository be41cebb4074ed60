package rootly

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

// Limits on how much enrichment is rendered into an incident body.
const (
	maxIncidentEvents = 10
)

// Ensure IncidentMapper implements the interface.
var _ driven.DocumentMapper = (*IncidentMapper)(nil)

// IncidentMapper maps incidents to documents.
type IncidentMapper struct {
	base
}

// NewIncidentMapper creates an incident mapper for the datasource.
func NewIncidentMapper(datasource string) *IncidentMapper {
	return &IncidentMapper{base: base{entity: domain.EntityIncidents, datasource: datasource}}
}

// Map converts an incident record to a document.
func (m *IncidentMapper) Map(record domain.RawRecord) (*domain.Document, error) {
	attrs := record.Attributes
	if attrs == nil {
		return nil, fmt.Errorf("incident %s: %w", record.ID, domain.ErrMissingAttributes)
	}

	title := fmt.Sprintf("[INC-%s] %s", sequentialID(attrs), attrs.StringOr("No Title", "title"))
	doc := m.newDocument(record, title)

	if status, ok := attrs.String("status"); ok {
		doc.Status = status
		doc.AddTag("status", status)
	}
	if severity, ok := attrs.String("severity", "data", "attributes", "name"); ok && severity != "Unknown" {
		doc.AddTag("severity", severity)
	}
	if kind, ok := attrs.String("kind"); ok {
		doc.AddTag("kind", kind)
	}

	m.buildBody(&doc, record, attrs)
	m.applyAuthor(&doc, attrs)
	m.applyTimestamps(&doc, attrs)

	return &doc, nil
}

func (m *IncidentMapper) buildBody(doc *domain.Document, record domain.RawRecord, attrs domain.Attrs) {
	var body bodyBuilder
	body.line("Title: %s", attrs.StringOr("No Title", "title"))
	if status, ok := attrs.String("status"); ok {
		body.line("Status: %s", status)
	}
	if summary, ok := attrs.String("summary"); ok {
		body.line("\nSummary:\n%s", summary)
		setSummary(doc, summary)
	}

	enrichment := record.Enrichment.IncidentBundle()
	m.addEvents(&body, enrichment)
	m.addActionItems(&body, record, enrichment)
	m.addSeverityDetail(&body, enrichment)

	doc.Body = body.content()
}

// addEvents renders the incident event timeline, capped at the first
// maxIncidentEvents entries.
func (m *IncidentMapper) addEvents(body *bodyBuilder, enrichment *domain.IncidentEnrichment) {
	if enrichment == nil || len(enrichment.Events) == 0 {
		return
	}

	body.section("Incident Events Timeline")
	for _, event := range capAttrs(enrichment.Events, maxIncidentEvents) {
		text, ok := event.String("event")
		if !ok {
			continue
		}
		timestamp := event.StringOr(event.StringOr("", "created_at"), "occurred_at")
		suffix := ""
		if event.StringOr("", "visibility") == "internal" {
			suffix = " (internal)"
		}
		body.line("[%s] %s%s", truncate(timestamp, 16), text, suffix)
	}
}

// addActionItems renders detailed action items from enrichment, falling
// back to the bare relationship ids when no enrichment is present.
func (m *IncidentMapper) addActionItems(
	body *bodyBuilder, record domain.RawRecord, enrichment *domain.IncidentEnrichment,
) {
	if enrichment != nil && len(enrichment.ActionItems) > 0 {
		body.section("Action Items")
		for _, item := range enrichment.ActionItems {
			title := item.StringOr(fmt.Sprintf("Action Item %s", item.StringOr("Unknown", "id")), "title")
			body.line("• %s", title)
			body.line("  Status: %s | Assignee: %s",
				item.StringOr("Unknown", "status"),
				item.StringOr("Unassigned", "assignee", "name"))
			if due, ok := item.String("due_date"); ok {
				body.line("  Due: %s", due)
			}
		}
		return
	}

	ids := record.RelatedIDs("action_items")
	if len(ids) == 0 {
		return
	}
	body.line("\nAction Items:")
	for _, id := range ids {
		body.line("- %s", id)
	}
}

// addSeverityDetail renders the resolved severity definition when its
// description adds something beyond the name.
func (m *IncidentMapper) addSeverityDetail(body *bodyBuilder, enrichment *domain.IncidentEnrichment) {
	if enrichment == nil || enrichment.SeverityDetail == nil {
		return
	}

	detail := enrichment.SeverityDetail
	name := detail.StringOr("", "name")
	description := detail.StringOr("", "description")
	if description == "" || description == name {
		return
	}

	body.line("\nSeverity Details:")
	body.line("Level: %s (%s)", name, detail.StringOr("", "level"))
	body.line("Description: %s", description)
}

// sequentialID formats the incident's sequential id, accepting both
// numeric and string encodings.
func sequentialID(attrs domain.Attrs) string {
	if seq, ok := attrs.Int("sequential_id"); ok {
		return strconv.Itoa(seq)
	}
	if seq, ok := attrs.String("sequential_id"); ok {
		return seq
	}
	return "N/A"
}

// capAttrs limits a slice to its first n elements.
func capAttrs(items []domain.Attrs, n int) []domain.Attrs {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
