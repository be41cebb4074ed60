package domain

// Attrs is a loosely typed attribute tree as decoded from a JSON:API
// payload. Accessors navigate nested paths and report absence explicitly,
// so mapper code never has to chain presence checks by hand.
type Attrs map[string]any

// Get walks the given key path and returns the value at the end of it.
// The boolean is false if any intermediate key is missing or not a map.
func (a Attrs) Get(path ...string) (any, bool) {
	var current any = map[string]any(a)
	for _, key := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String returns the non-empty string at the given path.
// Empty strings are reported as absent, matching the source API's
// habit of sending "" for unset fields.
func (a Attrs) String(path ...string) (string, bool) {
	value, ok := a.Get(path...)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// StringOr returns the string at the given path, or fallback when absent.
func (a Attrs) StringOr(fallback string, path ...string) string {
	if s, ok := a.String(path...); ok {
		return s
	}
	return fallback
}

// Int returns the integer at the given path. JSON numbers decode as
// float64, so both representations are accepted.
func (a Attrs) Int(path ...string) (int, bool) {
	value, ok := a.Get(path...)
	if !ok {
		return 0, false
	}
	switch n := value.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// Bool returns the boolean at the given path. String encodings
// "true" and "false" are accepted alongside JSON booleans.
func (a Attrs) Bool(path ...string) (bool, bool) {
	value, ok := a.Get(path...)
	if !ok {
		return false, false
	}
	switch b := value.(type) {
	case bool:
		return b, true
	case string:
		switch b {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// Map returns the nested map at the given path.
func (a Attrs) Map(path ...string) (Attrs, bool) {
	value, ok := a.Get(path...)
	if !ok {
		return nil, false
	}
	m, ok := asMap(value)
	if !ok {
		return nil, false
	}
	return Attrs(m), true
}

// Slice returns the list of maps at the given path. Non-map elements
// are skipped.
func (a Attrs) Slice(path ...string) ([]Attrs, bool) {
	value, ok := a.Get(path...)
	if !ok {
		return nil, false
	}
	raw, ok := value.([]any)
	if !ok {
		return nil, false
	}
	items := make([]Attrs, 0, len(raw))
	for _, element := range raw {
		if m, ok := asMap(element); ok {
			items = append(items, Attrs(m))
		}
	}
	return items, true
}

func asMap(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case Attrs:
		return m, true
	default:
		return nil, false
	}
}

// RawRecord is one record as returned by the source API: a stable id,
// a loosely structured attribute tree, optional relationship references
// and an optional enrichment bundle attached by the fetcher.
//
// A record without Attributes is unusable and will be skipped by the
// mapper layer.
type RawRecord struct {
	// ID is the source API's unique identifier for the record.
	ID string

	// Type is the JSON:API resource type (e.g. "incidents").
	Type string

	// Attributes holds the record's fields. Nil means the record
	// cannot be mapped.
	Attributes Attrs

	// Relationships holds references to related records.
	Relationships Attrs

	// Enrichment carries supplementary context fetched alongside the
	// record. Nil when no enrichment was requested or available.
	Enrichment *Enrichment
}

// RelatedID returns the id of a to-one relationship, e.g.
// RelatedID("incident") reads relationships.incident.data.id.
func (r RawRecord) RelatedID(name string) (string, bool) {
	if r.Relationships == nil {
		return "", false
	}
	return r.Relationships.String(name, "data", "id")
}

// RelatedIDs returns the ids of a to-many relationship.
func (r RawRecord) RelatedIDs(name string) []string {
	if r.Relationships == nil {
		return nil
	}
	refs, ok := r.Relationships.Slice(name, "data")
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id, ok := ref.String("id"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
