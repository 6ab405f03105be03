// Package gitdiff acquires weight-file diffs for analysis.
//
// Diffs come from three sources: a git revision range (shelling out to
// git with a pathspec restricted to generated weight files), a saved
// diff file, or standard input. All three return the same [Result] so
// the analysis pipeline never cares where the text came from.
package gitdiff
