// Package services implements the core sync orchestration on top of the
// driven ports.
package services
