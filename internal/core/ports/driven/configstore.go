package driven

// ConfigStore provides persistent key-value configuration with typed
// accessors. Keys use dot notation (e.g. "rootly.api_token").
type ConfigStore interface {
	// Get retrieves a raw value.
	Get(key string) (any, bool)

	// GetString retrieves a string value, "" if unset.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 if unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false if unset.
	GetBool(key string) bool

	// Has reports whether a key is present.
	Has(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Keys returns all present keys, sorted.
	Keys() []string
}
