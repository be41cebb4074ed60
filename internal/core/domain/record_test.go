package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAttrs(t *testing.T, raw string) Attrs {
	t.Helper()
	var attrs Attrs
	require.NoError(t, json.Unmarshal([]byte(raw), &attrs))
	return attrs
}

func TestAttrs_String(t *testing.T) {
	attrs := decodeAttrs(t, `{
		"title": "DB outage",
		"empty": "",
		"severity": {"data": {"attributes": {"name": "SEV1"}}},
		"count": 3
	}`)

	tests := []struct {
		name   string
		path   []string
		want   string
		wantOK bool
	}{
		{"top level", []string{"title"}, "DB outage", true},
		{"nested", []string{"severity", "data", "attributes", "name"}, "SEV1", true},
		{"missing key", []string{"status"}, "", false},
		{"missing intermediate", []string{"severity", "missing", "name"}, "", false},
		{"empty string treated as absent", []string{"empty"}, "", false},
		{"wrong type", []string{"count"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := attrs.String(tt.path...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttrs_StringOr(t *testing.T) {
	attrs := decodeAttrs(t, `{"name": "primary"}`)

	assert.Equal(t, "primary", attrs.StringOr("fallback", "name"))
	assert.Equal(t, "fallback", attrs.StringOr("fallback", "missing"))
}

func TestAttrs_Int(t *testing.T) {
	attrs := decodeAttrs(t, `{"sequential_id": 42, "name": "x"}`)

	seq, ok := attrs.Int("sequential_id")
	assert.True(t, ok)
	assert.Equal(t, 42, seq)

	_, ok = attrs.Int("name")
	assert.False(t, ok)

	_, ok = attrs.Int("missing")
	assert.False(t, ok)
}

func TestAttrs_Bool(t *testing.T) {
	attrs := decodeAttrs(t, `{"default": true, "legacy": "true", "off": "false", "other": "yes"}`)

	value, ok := attrs.Bool("default")
	assert.True(t, ok)
	assert.True(t, value)

	value, ok = attrs.Bool("legacy")
	assert.True(t, ok)
	assert.True(t, value)

	value, ok = attrs.Bool("off")
	assert.True(t, ok)
	assert.False(t, value)

	_, ok = attrs.Bool("other")
	assert.False(t, ok)

	_, ok = attrs.Bool("missing")
	assert.False(t, ok)
}

func TestAttrs_Slice(t *testing.T) {
	attrs := decodeAttrs(t, `{
		"relationships": {"action_items": {"data": [{"id": "a1"}, {"id": "a2"}, "junk"]}}
	}`)

	items, ok := attrs.Slice("relationships", "action_items", "data")
	assert.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "a1", items[0].StringOr("", "id"))

	_, ok = attrs.Slice("relationships", "missing")
	assert.False(t, ok)
}

func TestRawRecord_RelatedID(t *testing.T) {
	record := RawRecord{
		ID: "r1",
		Relationships: Attrs{
			"incident": map[string]any{
				"data": map[string]any{"id": "inc-9"},
			},
		},
	}

	id, ok := record.RelatedID("incident")
	assert.True(t, ok)
	assert.Equal(t, "inc-9", id)

	_, ok = record.RelatedID("user")
	assert.False(t, ok)

	_, ok = RawRecord{}.RelatedID("incident")
	assert.False(t, ok)
}

func TestRawRecord_RelatedIDs(t *testing.T) {
	record := RawRecord{
		Relationships: Attrs{
			"action_items": map[string]any{
				"data": []any{
					map[string]any{"id": "a1"},
					map[string]any{"id": "a2"},
				},
			},
		},
	}

	assert.Equal(t, []string{"a1", "a2"}, record.RelatedIDs("action_items"))
	assert.Nil(t, record.RelatedIDs("events"))
}
