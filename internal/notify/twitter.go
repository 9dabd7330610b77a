package notify

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"yhmonitor/internal/program"
)

// TwitterNotifier posts new programs to Twitter.
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per added program. Removals stay off the
// public feed.
func (n *TwitterNotifier) Notify(source string, added, _ []program.Key) error {
	for i, key := range added {
		tweet := formatTweet(source, key)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for %s: %w", key.Title, err)
		}

		// Rate limiting: wait between tweets
		if i < len(added)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats an added program as a tweet
func formatTweet(source string, key program.Key) string {
	tweet := "🎓 New yrkeshögskola program!\n\n"
	tweet += fmt.Sprintf("📚 %s\n", key.Title)
	tweet += fmt.Sprintf("🏫 %s\n", key.Provider)
	tweet += fmt.Sprintf("\n🔗 %s\n", key.Link)

	sourceHashtag := fmt.Sprintf("#%s", strings.ReplaceAll(source, "-", ""))
	tweet += fmt.Sprintf("\n#yrkeshögskola #utbildning %s", sourceHashtag)

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		// Truncate and add ellipsis
		tweet = tweet[:277] + "..."
	}

	return tweet
}
