// Package rootly maps enriched Rootly records to normalised search
// documents, one mapper per entity type. Mappers are pure transforms:
// no lookups, no mutation of the input record.
package rootly
