package vorhaben

import "context"

// IDSource discovers the ids of the project pages to process.
type IDSource interface {
	// Discover returns distinct page ids.
	Discover(ctx context.Context) ([]string, error)
}

// ParsedPage holds everything a PageParser reads from a project page.
type ParsedPage struct {
	Title       string
	Description string
	Nodes       []ContentNode
	Links       []Link
}

// PageParser converts project page HTML into nodes and page metadata.
type PageParser interface {
	// Parse returns an error if the page lacks its required content region.
	Parse(html string) (*ParsedPage, error)
}

// ScrapeResult is the outcome of processing one page.
type ScrapeResult struct {
	Record *PageRecord

	// Unrecognized holds headings outside the section vocabulary.
	Unrecognized []string

	// Discarded counts content nodes dropped after separators
	// and unrecognized headings.
	Discarded int
}

// Scraper fetches and extracts a single project page.
type Scraper interface {
	Scrape(ctx context.Context, id string) (*ScrapeResult, error)
}
