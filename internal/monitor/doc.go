// Package monitor orchestrates monitoring runs.
//
// A run fetches every configured source, extracts the day's program
// records, persists them as the day's snapshot and diffs them against
// the previous day's. Sources are processed in parallel under a bounded
// errgroup; a failing source carries its error in its result and never
// stops the others.
package monitor
