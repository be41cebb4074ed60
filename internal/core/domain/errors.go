package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTimestamp indicates a "since" argument that is not
	// valid ISO-8601. Fatal before any network activity.
	ErrInvalidTimestamp = errors.New("invalid ISO-8601 timestamp")

	// ErrMissingAttributes indicates a raw record without a usable
	// attributes block. The record is skipped, not fatal.
	ErrMissingAttributes = errors.New("record missing attributes")

	// ErrMissingCredentials indicates a required API token is not
	// configured. Fatal before any network activity.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrNoPipeline indicates no fetcher/mapper pair is registered for
	// an enabled entity type.
	ErrNoPipeline = errors.New("no pipeline registered")

	// ErrRateLimited indicates the source API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
