package notify

import (
	"fmt"

	"yhmonitor/internal/program"
)

// DryRunNotifier prints what would be posted without actually sending
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the changes that would be posted
func (n *DryRunNotifier) Notify(source string, added, removed []program.Key) error {
	fmt.Printf("--- %s ---\n", source)
	for _, key := range added {
		fmt.Printf("  + %s by %s (%s)\n", key.Title, key.Provider, key.Link)
	}
	for _, key := range removed {
		fmt.Printf("  - %s by %s (%s)\n", key.Title, key.Provider, key.Link)
	}
	return nil
}
