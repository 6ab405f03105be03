// Weightlens analyzes diffs of generated Substrate weight files and reports
// significant cost changes.
//
// It parses base weights, per-variable multipliers, proof sizes, and minimum
// execution times on both sides of a unified diff, classifies the changes
// against a configurable threshold, and emits text, markdown, or JSON reports
// with deterministic exit codes suitable for CI gating.
//
// Usage:
//
//	git diff main..HEAD -- '*/weights/*' | weightlens analyze
//	weightlens analyze --file weights.diff --threshold 30
//	weightlens git main..HEAD --merge-base
//	weightlens pr 1234 --repo moonbeam-foundation/moonbeam
//
// See https://github.com/substrate-tools/weightlens for full documentation.
package main
