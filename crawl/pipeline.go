// Package crawl coordinates id discovery, page scraping and the concurrent
// collection of page records.
package crawl

import (
	"context"
	"errors"
	"sort"

	"github.com/offenesjena/vorhaben"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages scraped in parallel.
const DefaultConcurrency = 8

// Pipeline scrapes a set of pages concurrently.
type Pipeline struct {
	Scraper     vorhaben.Scraper
	Concurrency int
}

// Failure is a page that could not be scraped.
type Failure struct {
	ID  string
	Err error
}

// HeadingWarning is a heading outside the section vocabulary.
type HeadingWarning struct {
	ID      string
	Heading string
}

// Result holds the outcome of a pipeline run.
type Result struct {
	// Records are the scraped pages sorted by id.
	Records []*vorhaben.PageRecord

	// Failures are sorted by id.
	Failures []Failure

	// Warnings are sorted by id, in document order within a page.
	Warnings []HeadingWarning

	// Discarded counts content nodes dropped across all pages.
	Discarded int
}

// FailedIDs returns the ids of failed pages.
func (r *Result) FailedIDs() []string {
	ids := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		ids[i] = f.ID
	}
	return ids
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ID        string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
// It is never called concurrently.
type ProgressFunc func(event ProgressEvent)

// pageOutcome holds the outcome of scraping a single page.
type pageOutcome struct {
	id     string
	result *vorhaben.ScrapeResult
	err    error
}

var errNoRecord = errors.New("scraper returned no record")

// Run scrapes every id and returns the collected records.
//
// A failing page never stops the others; it is reported in Result.Failures
// and left out of Result.Records. Records are committed whole, so a page
// either appears complete or not at all. If ctx is canceled, Run returns
// the context error and no result.
func (p *Pipeline) Run(ctx context.Context, ids []string, progress ProgressFunc) (*Result, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	records := vorhaben.NewResultSet()
	outcomes := make(chan pageOutcome, len(ids))
	total := len(ids)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for _, id := range ids {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				res, err := p.Scraper.Scrape(ctx, id)
				if err == nil && (res == nil || res.Record == nil) {
					err = &vorhaben.PageError{ID: id, Err: errNoRecord}
				}
				if err == nil {
					records.Put(res.Record)
				}
				outcomes <- pageOutcome{id: id, result: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	result := &Result{}
	completed := 0
	for o := range outcomes {
		completed++

		if o.err != nil {
			result.Failures = append(result.Failures, Failure{ID: o.id, Err: o.err})
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					ID:        o.id,
					Error:     o.err,
				})
			}
			continue
		}

		for _, heading := range o.result.Unrecognized {
			result.Warnings = append(result.Warnings, HeadingWarning{ID: o.id, Heading: heading})
		}
		result.Discarded += o.result.Discarded

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				ID:        o.id,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(result.Failures, func(i, j int) bool {
		return result.Failures[i].ID < result.Failures[j].ID
	})
	sort.SliceStable(result.Warnings, func(i, j int) bool {
		return result.Warnings[i].ID < result.Warnings[j].ID
	})
	result.Records = records.Sorted()

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: completed,
			Total:     total,
		})
	}

	return result, nil
}
