package crawl

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/offenesjena/vorhaben"
)

// DefaultPagePattern matches project page links on the index. The first
// capture group is the page id.
var DefaultPagePattern = regexp.MustCompile(`https?://www\.jena\.de/de/(\d+)`)

// Ensure IndexSource implements vorhaben.IDSource at compile time.
var _ vorhaben.IDSource = (*IndexSource)(nil)

// IndexSource discovers page ids by scanning the index.
//
// The default index is the list's XML export, which is malformed, so the raw
// text is matched against Pattern instead of being parsed.
type IndexSource struct {
	Fetcher  vorhaben.Fetcher
	IndexURL string
	Pattern  *regexp.Regexp
}

// Discover returns the distinct page ids linked from the index, sorted.
// It returns ENOTFOUND if the index links to no pages.
func (s *IndexSource) Discover(ctx context.Context) ([]string, error) {
	pattern := s.Pattern
	if pattern == nil {
		pattern = DefaultPagePattern
	}
	if pattern.NumSubexp() < 1 {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "page pattern %q has no capture group", pattern)
	}

	html, err := s.Fetcher.Fetch(ctx, s.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, m := range pattern.FindAllStringSubmatch(html, -1) {
		id := m[1]
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, vorhaben.Errorf(vorhaben.ENOTFOUND, "no project pages linked from %s", s.IndexURL)
	}

	sort.Strings(ids)
	return ids, nil
}
