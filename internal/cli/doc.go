// Package cli implements the command-line interface for yh-monitor.
//
// The cli package provides the Cobra-based CLI with support for running the
// daily check, formatting output (text/JSON), listing stored snapshots and
// pruning old ones. It coordinates the scrape, snapshot and monitor packages
// to fetch, persist, and report on changed program listings.
package cli
