package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/offenesjena/vorhaben"
)

// Ensure LoggingScraper implements vorhaben.Scraper.
var _ vorhaben.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging. Headings outside the
// section vocabulary are logged at warn level.
type LoggingScraper struct {
	next   vorhaben.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next vorhaben.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) Scrape(ctx context.Context, id string) (res *vorhaben.ScrapeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"id", id, "duration", time.Since(begin)}
		if err != nil {
			s.logger.Error("scrape", append(attrs, "err", err)...)
			return
		}
		if res != nil {
			for _, heading := range res.Unrecognized {
				s.logger.Warn("unrecognized heading", "id", id, "heading", heading)
			}
			attrs = append(attrs, "discarded", res.Discarded)
			if res.Record != nil {
				attrs = append(attrs, "sections", len(res.Record.Sections), "links", len(res.Record.Links))
			}
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, id)
}
