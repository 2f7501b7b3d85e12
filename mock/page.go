package mock

import (
	"context"

	"github.com/offenesjena/vorhaben"
)

var (
	_ vorhaben.IDSource   = (*IDSource)(nil)
	_ vorhaben.PageParser = (*PageParser)(nil)
	_ vorhaben.Scraper    = (*Scraper)(nil)
)

// IDSource is a mock implementation of vorhaben.IDSource.
type IDSource struct {
	DiscoverFn func(ctx context.Context) ([]string, error)
}

func (s *IDSource) Discover(ctx context.Context) ([]string, error) {
	return s.DiscoverFn(ctx)
}

// PageParser is a mock implementation of vorhaben.PageParser.
type PageParser struct {
	ParseFn func(html string) (*vorhaben.ParsedPage, error)
}

func (p *PageParser) Parse(html string) (*vorhaben.ParsedPage, error) {
	return p.ParseFn(html)
}

// Scraper is a mock implementation of vorhaben.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, id string) (*vorhaben.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, id string) (*vorhaben.ScrapeResult, error) {
	return s.ScrapeFn(ctx, id)
}
