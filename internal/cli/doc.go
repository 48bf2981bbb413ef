// Package cli defines the Cobra command tree for the cleanlinkrsp CLI. The
// root command performs the rewrite itself; each other file registers one
// subcommand (version, config, layout). Commands delegate to internal
// packages for business logic and only handle flag parsing, I/O formatting
// and exit behavior.
package cli
