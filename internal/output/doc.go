// Package output formats weight analysis results for display or
// machine consumption.
//
// Three formats are supported:
//   - text     — the sectioned terminal report (default)
//   - markdown — PR-comment-friendly with collapsible sections
//   - json     — full structured export of the analysis
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then
// call [Writer.Write] with an [io.Writer] and a [*weights.Analysis].
// [WriteReport] is a convenience helper that handles destination
// selection.
//
// Writers are pure renderers: every ordering decision is made by the
// classifier, and the writers reproduce it as-is.
package output
