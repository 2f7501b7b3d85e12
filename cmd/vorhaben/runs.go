package main

import (
	"fmt"
	"time"

	"github.com/offenesjena/vorhaben"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if deps.Snapshots == nil {
		err := vorhaben.Errorf(vorhaben.EINVALID, "no snapshot database; set --db or VORHABEN_DB")
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	runs, err := deps.Snapshots.FindRuns(deps.Ctx, vorhaben.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'vorhaben scrape --db' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d projects\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.RecordCount)
	}
	return nil
}
