package program

import "sort"

// DiffResult contains the identity keys that appeared in or disappeared
// from a source between two snapshots.
type DiffResult struct {
	Added   []Key `json:"added"`
	Removed []Key `json:"removed"`
}

// Empty reports whether the diff contains no additions or removals.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff compares the current records against the previous snapshot's
// records and returns the keys added and removed. Both collections are
// reduced to identity sets first, so duplicate keys within a collection
// collapse and a key present on both sides is never reported. A record
// whose secondary fields changed but whose key did not is invisible here.
func Diff(current, previous []Record) DiffResult {
	currentKeys := keySet(current)
	previousKeys := keySet(previous)

	result := DiffResult{
		Added:   make([]Key, 0),
		Removed: make([]Key, 0),
	}

	for key := range currentKeys {
		if _, exists := previousKeys[key]; !exists {
			result.Added = append(result.Added, key)
		}
	}

	for key := range previousKeys {
		if _, exists := currentKeys[key]; !exists {
			result.Removed = append(result.Removed, key)
		}
	}

	// Sort for consistent output across runs
	sortKeys(result.Added)
	sortKeys(result.Removed)

	return result
}

func keySet(records []Record) map[Key]struct{} {
	set := make(map[Key]struct{}, len(records))
	for _, rec := range records {
		set[rec.Key()] = struct{}{}
	}
	return set
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
}
