// Package weights contains the core pipeline for analyzing diffs of
// generated Substrate weight files.
//
// A unified diff is parsed into per-file changes, change lines are
// segmented by the enclosing extrinsic function, and each side (removed
// and added) is scanned for the generated weight declaration patterns:
// the base Weight::from_parts term, per-variable saturating_add
// multiplier terms, DB read counts, and the measured minimum execution
// time recorded in the benchmark comment.
//
// The extracted old/new [Record] pairs are then classified against a
// percentage threshold into the report sections rendered by
// internal/output: base ref_time increases and decreases, per-variable
// ref_time multiplier changes, minimum execution time changes,
// proof_size multiplier changes, and per-runtime summaries.
//
// Extraction is best-effort by design. Lines that match no recognizer
// are ignored, so unrecognized declaration styles degrade to absent
// fields rather than errors. The single fatal condition is
// empty/whitespace-only input, reported as [ErrEmptyDiff].
package weights
