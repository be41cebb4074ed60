// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//
// The package also loads the typed sync settings (source API, index API
// and per-type limits) from the raw key-value store.
package file
