// Package github provides a minimal GitHub REST API client for
// fetching pull-request diffs to analyze.
//
// The repository can be given explicitly as owner/repo or detected
// from the local git origin remote. Authentication uses the
// GITHUB_TOKEN environment variable; auth failures are distinguishable
// via [IsAuthError] so the CLI can map them to a dedicated exit code.
package github
