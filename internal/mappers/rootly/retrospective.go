package rootly

import (
	"fmt"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

var _ driven.DocumentMapper = (*RetrospectiveMapper)(nil)

// RetrospectiveMapper maps incident retrospectives to documents.
type RetrospectiveMapper struct {
	base
}

// NewRetrospectiveMapper creates a retrospective mapper for the
// datasource.
func NewRetrospectiveMapper(datasource string) *RetrospectiveMapper {
	return &RetrospectiveMapper{base: base{entity: domain.EntityRetrospectives, datasource: datasource}}
}

// Map converts a retrospective record to a document.
func (m *RetrospectiveMapper) Map(record domain.RawRecord) (*domain.Document, error) {
	attrs := record.Attributes
	if attrs == nil {
		return nil, fmt.Errorf("retrospective %s: %w", record.ID, domain.ErrMissingAttributes)
	}

	incidentID, _ := record.RelatedID("incident")

	title := attrs.StringOr("", "title")
	if title == "" {
		if incidentID != "" {
			title = fmt.Sprintf("Incident %s", incidentID)
		} else {
			title = fmt.Sprintf("Retrospective %s", record.ID)
		}
	}
	doc := m.newDocument(record, fmt.Sprintf("Retrospective: %s", title))

	if status, ok := attrs.String("status"); ok {
		doc.Status = status
		doc.AddTag("status", status)
	}
	doc.AddTag("type", "retrospective")
	if incidentID != "" {
		doc.AddTag("incident", incidentID)
	}

	m.buildBody(&doc, attrs, title)
	m.applyAuthor(&doc, attrs)
	m.applyTimestamps(&doc, attrs)

	return &doc, nil
}

// buildBody renders the narrative sections a completed retrospective
// carries. Absent sections are omitted rather than rendered empty.
func (m *RetrospectiveMapper) buildBody(doc *domain.Document, attrs domain.Attrs, title string) {
	var body bodyBuilder
	body.line("Title: %s", title)
	if status, ok := attrs.String("status"); ok {
		body.line("Status: %s", status)
	}
	if summary, ok := attrs.String("summary"); ok {
		body.line("\nSummary:\n%s", summary)
		setSummary(doc, summary)
	}

	sections := []struct {
		field   string
		heading string
	}{
		{"what_went_well", "What Went Well"},
		{"what_could_be_improved", "What Could Be Improved"},
		{"action_items", "Action Items"},
		{"lessons_learned", "Lessons Learned"},
		{"notes", "Additional Notes"},
	}
	for _, section := range sections {
		if text, ok := attrs.String(section.field); ok {
			body.section(section.heading)
			body.line("%s", text)
		}
	}

	doc.Body = body.content()
}
