// Package domain contains the core types for the Rootly → Glean sync:
// raw source records, normalised documents, entity types, per-type
// configuration and sync run reporting.
package domain
