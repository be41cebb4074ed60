package rootly

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/logger"
)

// base carries the shared mapping behaviour: identity fields, the
// default-permission and view-URL fallbacks, timestamp and author
// extraction.
type base struct {
	entity     domain.EntityType
	datasource string
}

// EntityType identifies the entity this mapper serves.
func (b base) EntityType() domain.EntityType {
	return b.entity
}

// newDocument builds the shared base document for a record. The view
// URL falls back to the deterministic default when the source gives
// none.
func (b base) newDocument(record domain.RawRecord, title string) domain.Document {
	viewURL := strings.TrimSpace(record.Attributes.StringOr("", "url"))
	if viewURL == "" {
		viewURL = b.entity.DefaultViewURL(record.ID)
	}

	return domain.Document{
		ID:          record.ID,
		Datasource:  b.datasource,
		ObjectType:  b.entity.ObjectType(),
		Title:       title,
		ViewURL:     viewURL,
		Permissions: domain.Permissions{AllowAnonymousAccess: true},
	}
}

// applyTimestamps parses created_at/updated_at into epoch seconds.
// Unparsable values are logged and omitted, never fatal.
func (b base) applyTimestamps(doc *domain.Document, attrs domain.Attrs) {
	doc.CreatedAt = b.parseTimestamp(attrs, "created_at")
	doc.UpdatedAt = b.parseTimestamp(attrs, "updated_at")
}

func (b base) parseTimestamp(attrs domain.Attrs, field string) int64 {
	value, ok := attrs.String(field)
	if !ok {
		return 0
	}
	parsed, err := domain.ParseISO8601(value)
	if err != nil {
		logger.Warn("Could not parse %s %q: %v", field, value, err)
		return 0
	}
	return parsed.Unix()
}

// applyAuthor extracts the author from a nested user relationship inside
// the attributes. Both name and email absent means no author at all.
func (b base) applyAuthor(doc *domain.Document, attrs domain.Attrs) {
	userAttrs, ok := attrs.Map("user", "data", "attributes")
	if !ok {
		return
	}

	author := domain.Person{
		Name:  userAttrs.StringOr("", "full_name"),
		Email: userAttrs.StringOr("", "email"),
	}
	if author.Name == "" && author.Email == "" {
		return
	}
	doc.Author = &author
}

// setSummary sets the document summary to the given text.
func setSummary(doc *domain.Document, text string) {
	summary := domain.PlainText(text)
	doc.Summary = &summary
}

// bodyBuilder accumulates the document body line by line.
type bodyBuilder struct {
	parts []string
}

func (b *bodyBuilder) line(format string, args ...any) {
	b.parts = append(b.parts, fmt.Sprintf(format, args...))
}

func (b *bodyBuilder) section(heading string) {
	b.parts = append(b.parts, fmt.Sprintf("\n--- %s ---", heading))
}

func (b *bodyBuilder) content() domain.Content {
	return domain.PlainText(strings.Join(b.parts, "\n"))
}

// truncate shortens a timestamp-ish string for timeline lines.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
