// Package rootly implements the Rootly API connector: an authenticated
// JSON:API client, the paginated record fetcher and the per-entity-type
// enrichment fetchers.
package rootly
