package main

import (
	"fmt"
)

// Run executes the ids command.
func (c *IDsCmd) Run(deps *Dependencies) error {
	ids, err := deps.IDs.Discover(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(deps.Stdout, id)
	}
	return nil
}
