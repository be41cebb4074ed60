// Package driven defines the outbound ports: interfaces the core
// services depend on, implemented by adapters (source connectors,
// document mappers, the search index client and local stores).
package driven
