package vorhaben

import "strings"

// Link is an outbound link listed on a project page.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PageRecord is the extracted record of one project page.
// It is not modified after Assemble returns it.
type PageRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Sections    SectionMap `json:"sections"`
	Links       []Link     `json:"links"`
}

// Assemble builds a PageRecord from extracted page data.
//
// Title and description are trimmed; an empty value is kept rather than
// rejected. Empty and whitespace-only lines are dropped from every section.
// The inputs are copied, never retained.
func Assemble(id, title, description string, sections SectionMap, links []Link) *PageRecord {
	rec := &PageRecord{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Sections:    make(SectionMap, 0, len(sections)),
		Links:       make([]Link, len(links)),
	}

	for _, s := range sections {
		lines := make([]string, 0, len(s.Lines))
		for _, line := range s.Lines {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		rec.Sections = append(rec.Sections, Section{Name: s.Name, Lines: lines})
	}

	copy(rec.Links, links)

	return rec
}
