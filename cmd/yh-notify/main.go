package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"yhmonitor/internal/notify"
	"yhmonitor/internal/program"
)

var (
	botToken     = flag.String("bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	chatID       = flag.String("chat-id", os.Getenv("TELEGRAM_CHAT_ID"), "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	reportFile   = flag.String("report-file", "", "Path to check report JSON file (or read from stdin)")
	channel      = flag.String("channel", "telegram", "Notification channel: telegram, twitter or dryrun")
	dryRun       = flag.Bool("dry-run", false, "Print notifications without sending")
	sourceFilter = flag.String("source", "", "Only notify for this source")
	maxItems     = flag.Int("max-items", 10, "Maximum programs per source to include")
)

// sourceChanges is the slice of the check report this binary consumes.
type sourceChanges struct {
	Source   string        `json:"source"`
	Added    []program.Key `json:"added"`
	Removed  []program.Key `json:"removed"`
	FirstRun bool          `json:"first_run"`
	Error    string        `json:"error"`
}

// readReport reads the check report from file or stdin
func readReport(filePath string) ([]sourceChanges, error) {
	var reader io.Reader
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("opening report file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
			}
		}()
		reader = f
	} else {
		reader = os.Stdin
	}

	var report struct {
		Sources []sourceChanges `json:"sources"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&report); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return report.Sources, nil
}

// newNotifier selects the notification channel
func newNotifier() (notify.Notifier, error) {
	if *dryRun {
		return notify.NewDryRunNotifier(), nil
	}

	switch *channel {
	case "dryrun":
		return notify.NewDryRunNotifier(), nil
	case "twitter":
		return notify.NewTwitterNotifier()
	case "telegram":
		if *botToken == "" {
			return nil, fmt.Errorf("bot token is required (use --bot-token or TELEGRAM_BOT_TOKEN env var)")
		}
		if *chatID == "" {
			return nil, fmt.Errorf("chat ID is required (use --chat-id or TELEGRAM_CHAT_ID env var)")
		}
		return notify.NewTelegramNotifier(*botToken, *chatID)
	default:
		return nil, fmt.Errorf("unknown channel: %s", *channel)
	}
}

func main() {
	flag.Parse()

	sources, err := readReport(*reportFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading report: %v\n", err)
		os.Exit(1)
	}

	// Keep only sources with something to announce
	changed := make([]sourceChanges, 0, len(sources))
	for _, src := range sources {
		if *sourceFilter != "" && src.Source != *sourceFilter {
			continue
		}
		if src.Error != "" || src.FirstRun {
			continue
		}
		if len(src.Added) == 0 && len(src.Removed) == 0 {
			continue
		}
		changed = append(changed, src)
	}

	if len(changed) == 0 {
		fmt.Println("No changes to send")
		os.Exit(0)
	}

	notifier, err := newNotifier()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing notifier: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("DRY RUN MODE - Would notify for %d source(s):\n\n", len(changed))
	}

	sent := 0
	for _, src := range changed {
		added := src.Added
		removed := src.Removed
		if len(added) > *maxItems {
			added = added[:*maxItems]
		}
		if len(removed) > *maxItems {
			removed = removed[:*maxItems]
		}

		if err := notifier.Notify(src.Source, added, removed); err != nil {
			fmt.Fprintf(os.Stderr, "Error notifying for %s: %v\n", src.Source, err)
			os.Exit(1)
		}
		sent++
	}

	if !*dryRun {
		fmt.Printf("Successfully notified for %d source(s)\n", sent)
	}
}
