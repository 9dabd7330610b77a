package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"yhmonitor/internal/program"
)

// DefaultOrigin is the site origin prefixed onto relative hrefs.
const DefaultOrigin = "https://www.yrkeshogskolan.se"

const (
	cardSelector  = "#search-list article"
	titleSelector = "h1.h-byline"
	linkSelector  = "a[href]"
)

// Labels used on the definition lists inside a listing card. The site is
// Swedish and these are fixed strings in its markup.
const (
	labelProvider = "Utbildningsanordnare"
	labelStart    = "Nästa utbildningsstart"
	labelScope    = "Omfattning"
	labelPace     = "Studietakt"
	labelLocation = "Studieort"
)

// Extractor parses program records out of a search results page.
type Extractor struct {
	origin string
}

// NewExtractor creates an Extractor that absolutizes relative hrefs
// against origin. An empty origin falls back to DefaultOrigin.
func NewExtractor(origin string) *Extractor {
	if origin == "" {
		origin = DefaultOrigin
	}
	return &Extractor{origin: origin}
}

// Extract parses html and returns all program records in document order.
// A card missing its title element or a usable link is skipped without
// affecting the rest of the document; a page with no cards yields an
// empty slice. The only error is a failure of the HTML parser itself.
func (e *Extractor) Extract(html string) ([]program.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	records := make([]program.Record, 0)
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		if rec, ok := e.extractCard(card); ok {
			records = append(records, rec)
		}
	})

	return records, nil
}

// extractCard builds a record from one listing card. The boolean is
// false when the card lacks a title element or an anchor with an href,
// in which case the whole card is skipped.
func (e *Extractor) extractCard(card *goquery.Selection) (program.Record, bool) {
	title := card.Find(titleSelector).First()
	if title.Length() == 0 {
		return program.Record{}, false
	}

	href, ok := card.Find(linkSelector).First().Attr("href")
	if !ok {
		return program.Record{}, false
	}

	details := cardDetails(card)

	return program.Record{
		Title:    strings.TrimSpace(title.Text()),
		Provider: details[labelProvider],
		Start:    details[labelStart],
		Scope:    details[labelScope],
		Pace:     details[labelPace],
		Location: details[labelLocation],
		Link:     e.absoluteLink(href),
	}, true
}

// cardDetails maps the card's dt labels to their dd values. Each dl is
// zipped positionally on its own; unpaired elements are dropped and a
// repeated label keeps its last value.
func cardDetails(card *goquery.Selection) map[string]string {
	details := make(map[string]string)
	card.Find("dl").Each(func(_ int, dl *goquery.Selection) {
		labels := dl.Find("dt")
		values := dl.Find("dd")
		n := min(labels.Length(), values.Length())
		for i := 0; i < n; i++ {
			label := strings.TrimSpace(labels.Eq(i).Text())
			details[label] = strings.TrimSpace(values.Eq(i).Text())
		}
	})
	return details
}

// absoluteLink prefixes the site origin onto site-relative hrefs.
// Already-absolute hrefs, e.g. external provider redirects, pass
// through unchanged.
func (e *Extractor) absoluteLink(href string) string {
	if strings.HasPrefix(href, "/") {
		return e.origin + href
	}
	return href
}
