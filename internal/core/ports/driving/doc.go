// Package driving defines the inbound ports: the interfaces through
// which the CLI drives the core services.
package driving
