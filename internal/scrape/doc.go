// Package scrape provides HTTP fetching and HTML extraction for program
// listings on yrkeshogskolan.se search result pages.
//
// Extraction is selector driven. Each listing card is processed on its
// own: a card missing its title element or link is dropped while the
// rest of the page still extracts, which keeps a partial markup change
// on the site from blanking out a whole snapshot. The fetcher sends an
// identifying User-Agent and rate limits requests across sources.
package scrape
