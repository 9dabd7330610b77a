package cli

import (
	"sort"
	"strings"

	"yhmonitor/internal/program"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByTitle    SortOrder = "title"
	SortByProvider SortOrder = "provider"
	SortByStart    SortOrder = "start"
)

// sortRecords sorts a slice of records based on the specified sort order
func sortRecords(records []program.Record, order SortOrder) {
	switch order {
	case SortByTitle:
		sort.Slice(records, func(i, j int) bool {
			return compareByTitle(records[i], records[j])
		})
	case SortByProvider:
		sort.Slice(records, func(i, j int) bool {
			if !strings.EqualFold(records[i].Provider, records[j].Provider) {
				return strings.ToLower(records[i].Provider) < strings.ToLower(records[j].Provider)
			}
			// If providers are equal, sort by title
			return compareByTitle(records[i], records[j])
		})
	case SortByStart:
		sort.Slice(records, func(i, j int) bool {
			if records[i].Start != records[j].Start {
				// Records without a start date go last
				if records[i].Start == "" {
					return false
				}
				if records[j].Start == "" {
					return true
				}
				return records[i].Start < records[j].Start
			}
			// If start dates are equal, sort by title
			return compareByTitle(records[i], records[j])
		})
	}
}

// compareByTitle compares two records by title, then provider
// Returns true if record i should come before record j
func compareByTitle(i, j program.Record) bool {
	if !strings.EqualFold(i.Title, j.Title) {
		return strings.ToLower(i.Title) < strings.ToLower(j.Title)
	}
	return strings.ToLower(i.Provider) < strings.ToLower(j.Provider)
}
