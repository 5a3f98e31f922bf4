// Package cmd implements the stache subcommands.
//
// Each command is a kong command struct whose Run method receives the
// context.Context bound by the cli package. Commands read their input from
// files or, given "-", standard input, and write to the kong application's
// standard output.
package cmd

var (
	// ConfigIdentifier is the kong variable identifier containing the path of
	// the configuration file.
	ConfigIdentifier = "config"

	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"
)
