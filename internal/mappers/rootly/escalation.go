package rootly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/rootsync-cli/internal/core/domain"
	"github.com/custodia-labs/rootsync-cli/internal/core/ports/driven"
)

const maxNotificationRules = 5

var _ driven.DocumentMapper = (*EscalationPolicyMapper)(nil)

// EscalationPolicyMapper maps escalation policies to documents.
type EscalationPolicyMapper struct {
	base
}

// NewEscalationPolicyMapper creates an escalation policy mapper for the
// datasource.
func NewEscalationPolicyMapper(datasource string) *EscalationPolicyMapper {
	return &EscalationPolicyMapper{base: base{entity: domain.EntityEscalationPolicies, datasource: datasource}}
}

// Map converts an escalation policy record to a document.
func (m *EscalationPolicyMapper) Map(record domain.RawRecord) (*domain.Document, error) {
	attrs := record.Attributes
	if attrs == nil {
		return nil, fmt.Errorf("escalation policy %s: %w", record.ID, domain.ErrMissingAttributes)
	}

	name := attrs.StringOr("Unnamed Policy", "name")
	doc := m.newDocument(record, fmt.Sprintf("[ESCALATION] %s", name))

	if status, ok := attrs.String("status"); ok {
		doc.Status = status
		doc.AddTag("status", status)
	}
	if team, ok := attrs.String("group", "data", "attributes", "name"); ok {
		doc.AddTag("team", team)
	}

	enrichment := record.Enrichment.EscalationBundle()
	if enrichment != nil && len(enrichment.Levels) > 0 {
		doc.AddTag("escalation_steps", strconv.Itoa(len(enrichment.Levels)))
	}

	m.buildBody(&doc, attrs, enrichment, name)
	m.applyAuthor(&doc, attrs)
	m.applyTimestamps(&doc, attrs)

	return &doc, nil
}

func (m *EscalationPolicyMapper) buildBody(
	doc *domain.Document, attrs domain.Attrs, enrichment *domain.EscalationEnrichment, name string,
) {
	var body bodyBuilder
	body.line("Escalation Policy: %s", name)
	if description, ok := attrs.String("description"); ok {
		body.line("\nDescription:\n%s", description)
		setSummary(doc, description)
	}
	if repeat, ok := attrs.Int("repeat_count"); ok {
		body.line("Repeat Count: %d", repeat)
	}
	if timeout, ok := attrs.Int("escalation_timeout_in_min"); ok {
		body.line("Escalation Timeout: %d minutes", timeout)
	}

	if enrichment != nil {
		m.addLevels(&body, enrichment.Levels)
		m.addPaths(&body, enrichment.Paths)
		m.addNotificationRules(&body, enrichment.NotificationRules)
	}

	doc.Body = body.content()
}

// addLevels renders the notification chain in position order as the
// source returns it.
func (m *EscalationPolicyMapper) addLevels(body *bodyBuilder, levels []domain.Attrs) {
	if len(levels) == 0 {
		return
	}

	body.section("Escalation Levels")
	for i, level := range levels {
		position := i + 1
		if pos, ok := level.Int("position"); ok {
			position = pos
		}
		line := fmt.Sprintf("Level %d", position)
		if delay, ok := level.Int("delay"); ok {
			line += fmt.Sprintf(" (after %d min)", delay)
		}
		if targets, ok := level.Slice("notification_target_params"); ok && len(targets) > 0 {
			names := make([]string, 0, len(targets))
			for _, target := range targets {
				names = append(names, target.StringOr(target.StringOr("unknown", "type"), "name"))
			}
			line += ": " + strings.Join(names, ", ")
		}
		body.line("• %s", line)
	}
}

func (m *EscalationPolicyMapper) addPaths(body *bodyBuilder, paths []domain.Attrs) {
	if len(paths) == 0 {
		return
	}

	body.section("Escalation Paths")
	for _, path := range paths {
		name := path.StringOr("Unnamed path", "name")
		if isDefault, _ := path.Bool("default"); isDefault {
			body.line("• %s (default)", name)
		} else {
			body.line("• %s", name)
		}
	}
}

func (m *EscalationPolicyMapper) addNotificationRules(body *bodyBuilder, rules []domain.Attrs) {
	if len(rules) == 0 {
		return
	}

	body.section("Notification Rules")
	for _, rule := range capAttrs(rules, maxNotificationRules) {
		body.line("• %s", rule.StringOr("Unnamed rule", "name"))
	}
}
