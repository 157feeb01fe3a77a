package engine

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher is the interface that all page engines must implement
type Fetcher interface {
	// Fetch retrieves url and returns the parsed document. A response with a
	// status other than 200 yields a *FetchError.
	Fetch(ctx context.Context, url string) (*goquery.Document, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
