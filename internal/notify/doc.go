// Package notify provides notification interfaces and implementations
// for program changes.
//
// The package supports posting change notifications to Telegram and
// Twitter, plus a dry-run channel that prints instead of sending. The
// Telegram channel talks to the Bot API over plain HTTP; the Twitter
// channel uses OAuth1 credentials from the environment.
package notify
