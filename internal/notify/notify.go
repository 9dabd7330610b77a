package notify

import (
	"yhmonitor/internal/program"
)

// Notifier defines the interface for posting change notifications.
type Notifier interface {
	// Notify posts the added and removed programs for a source.
	Notify(source string, added, removed []program.Key) error
}
