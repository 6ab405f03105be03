// Package cli wires together the Cobra command tree for the weightlens binary.
//
// It defines the root command and all subcommands (analyze, git, pr, config,
// version), binds flags, reads configuration, invokes the weight analyzer,
// and returns deterministic exit codes for CI gating.
package cli
