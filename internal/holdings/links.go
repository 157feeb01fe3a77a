package holdings

import (
	"context"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/holdings/internal/engine"
	urlutil "github.com/law-makers/holdings/internal/utils/url"
)

// HoldingsDir is inserted before the last path segment of every fund link
const HoldingsDir = "portfolio-holdings/"

var lastSegment = regexp.MustCompile(`[^/]+$`)

// LinkOptions tunes link discovery
type LinkOptions struct {
	// SkipMissingHref drops anchors without an href instead of failing
	SkipMissingHref bool
}

// HoldingsURL inserts HoldingsDir immediately before the final path segment.
// Links ending in "/" have no final segment and are returned unchanged.
func HoldingsURL(link string) string {
	loc := lastSegment.FindStringIndex(link)
	if loc == nil || loc[0] == 0 {
		return link
	}
	return link[:loc[0]] + HoldingsDir + link[loc[0]:]
}

// CollectLinks fetches the listing page and returns the holdings URL of every
// anchor matching selector, in document order. Relative hrefs are resolved
// against listingURL; empty hrefs are kept as "".
func CollectLinks(ctx context.Context, f engine.Fetcher, listingURL, selector string, opts LinkOptions) ([]string, error) {
	doc, err := f.Fetch(ctx, listingURL)
	if err != nil {
		return nil, err
	}
	return ExtractLinks(doc, listingURL, selector, opts)
}

// ExtractLinks applies the link selector to an already parsed listing page
func ExtractLinks(doc *goquery.Document, listingURL, selector string, opts LinkOptions) ([]string, error) {
	sel := doc.Find(selector)
	links := make([]string, 0, sel.Length())

	var malformed error
	sel.EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			if opts.SkipMissingHref {
				log.Warn().Int("index", i).Str("selector", selector).Msg("Anchor has no href, skipping")
				return true
			}
			malformed = &MalformedMarkupError{URL: listingURL, Selector: selector, Index: i, Attr: "href"}
			return false
		}
		if href == "" {
			links = append(links, "")
			return true
		}
		links = append(links, HoldingsURL(urlutil.ResolveURL(listingURL, href)))
		return true
	})
	if malformed != nil {
		return nil, malformed
	}

	log.Debug().
		Str("url", listingURL).
		Int("links", len(links)).
		Msg("Links collected")

	return links, nil
}
