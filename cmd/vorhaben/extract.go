package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/offenesjena/vorhaben"
)

var digits = regexp.MustCompile(`\d+`)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page, err := deps.Parser.Parse(string(data))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	id := c.ID
	if id == "" {
		id = digits.FindString(filepath.Base(c.File))
	}

	extraction := deps.Classifier.Extract(page.Nodes)
	rec := vorhaben.Assemble(id, page.Title, page.Description, extraction.Sections, page.Links)

	for _, heading := range extraction.Unrecognized {
		fmt.Fprintf(deps.Stderr, "  unrecognized heading: %q\n", heading)
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
