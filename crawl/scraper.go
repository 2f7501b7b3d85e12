package crawl

import (
	"context"
	"fmt"

	"github.com/offenesjena/vorhaben"
)

// DefaultPageURL is the prefix a page id is appended to.
const DefaultPageURL = "http://www.jena.de/de/"

// Ensure PageScraper implements vorhaben.Scraper at compile time.
var _ vorhaben.Scraper = (*PageScraper)(nil)

// PageScraper fetches, parses and extracts one project page.
type PageScraper struct {
	Fetcher    vorhaben.Fetcher
	Parser     vorhaben.PageParser
	Classifier *vorhaben.Classifier
	PageURL    string
}

// URL returns the address of the page with the given id.
func (s *PageScraper) URL(id string) string {
	base := s.PageURL
	if base == "" {
		base = DefaultPageURL
	}
	return base + id
}

// Scrape returns the assembled record of page id. Errors are *vorhaben.PageError.
func (s *PageScraper) Scrape(ctx context.Context, id string) (*vorhaben.ScrapeResult, error) {
	html, err := s.Fetcher.Fetch(ctx, s.URL(id))
	if err != nil {
		return nil, &vorhaben.PageError{ID: id, Err: fmt.Errorf("fetch: %w", err)}
	}

	page, err := s.Parser.Parse(html)
	if err != nil {
		return nil, &vorhaben.PageError{ID: id, Err: fmt.Errorf("parse: %w", err)}
	}

	classifier := s.Classifier
	if classifier == nil {
		classifier = vorhaben.DefaultClassifier()
	}
	x := classifier.Extract(page.Nodes)

	return &vorhaben.ScrapeResult{
		Record:       vorhaben.Assemble(id, page.Title, page.Description, x.Sections, page.Links),
		Unrecognized: x.Unrecognized,
		Discarded:    x.Discarded,
	}, nil
}
