package main

import (
	"fmt"

	"github.com/offenesjena/vorhaben"
	"github.com/offenesjena/vorhaben/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	ids, err := deps.IDs.Discover(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot discover projects: %v\n", err)
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		if event.Type == crawl.ProgressStarted {
			fmt.Fprintf(deps.Stdout, "Found %d projects\n", event.Total)
		}
	}

	pipeline := &crawl.Pipeline{
		Scraper:     deps.Scraper,
		Concurrency: deps.Settings.Concurrency,
	}
	result, err := pipeline.Run(deps.Ctx, ids, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: scrape interrupted: %v\n", err)
		return err
	}

	doc := vorhaben.NewDocument(result.Records, deps.Now())
	if err := deps.Writer.WriteDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot write %s: %v\n", deps.Settings.Output, err)
		return err
	}

	for _, f := range result.Failures {
		fmt.Fprintf(deps.Stderr, "  failed %s: %v\n", f.ID, f.Err)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(deps.Stderr, "  unrecognized heading on %s: %q\n", w.ID, w.Heading)
	}

	fmt.Fprintf(deps.Stdout, "Processed %d pages, %d failed, %d unrecognized headings\n",
		len(ids), len(result.Failures), len(result.Warnings))
	fmt.Fprintf(deps.Stdout, "Wrote %d projects to %s\n", len(doc.Vorhaben), deps.Settings.Output)

	if deps.Snapshots != nil {
		diff, err := deps.Snapshots.SaveRun(deps.Ctx, result.Records)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot save snapshot: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Snapshot %s: %d added, %d changed, %d removed, %d unchanged\n",
			diff.RunID, len(diff.Added), len(diff.Changed), len(diff.Removed), diff.Unchanged)
		for _, id := range diff.Added {
			fmt.Fprintf(deps.Stdout, "  + %s\n", id)
		}
		for _, id := range diff.Changed {
			fmt.Fprintf(deps.Stdout, "  ~ %s\n", id)
		}
		for _, id := range diff.Removed {
			fmt.Fprintf(deps.Stdout, "  - %s\n", id)
		}
	}

	return nil
}
