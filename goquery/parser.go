// Package goquery implements vorhaben.PageParser on top of goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/offenesjena/vorhaben"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSS selectors for the regions of a project page.
const (
	IntroSelector   = "#content_neu_detail"
	PanelSelector   = ".tab_panel_helper"
	LinkBoxSelector = ".link_box_left"
)

// Ensure Parser implements vorhaben.PageParser at compile time.
var _ vorhaben.PageParser = (*Parser)(nil)

// Parser reads project pages of the city website.
type Parser struct {
	base *url.URL
}

// Option configures a Parser.
type Option func(*Parser)

// WithBaseURL resolves relative link URLs against base.
// Invalid base URLs are ignored.
func WithBaseURL(base string) Option {
	return func(p *Parser) {
		if u, err := url.Parse(base); err == nil && u.IsAbs() {
			p.base = u
		}
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts title, description, content nodes and links from html.
// The intro region is required; the panel and link regions are optional.
func (p *Parser) Parse(htmlText string) (*vorhaben.ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "failed to parse HTML: %v", err)
	}

	intro := doc.Find(IntroSelector).First()
	if intro.Length() == 0 {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "page has no %s region", IntroSelector)
	}
	children := intro.Children()

	return &vorhaben.ParsedPage{
		Title:       strings.TrimSpace(children.Eq(0).Text()),
		Description: strings.TrimSpace(children.Eq(1).Text()),
		Nodes:       Tokenize(doc.Find(PanelSelector)),
		Links:       p.links(doc.Find(LinkBoxSelector)),
	}, nil
}

// Tokenize turns the element children of sel into content nodes.
// h1 to h6 become headings; every other element is content.
func Tokenize(sel *goquery.Selection) []vorhaben.ContentNode {
	children := sel.Children()
	nodes := make([]vorhaben.ContentNode, 0, children.Length())
	children.Each(func(_ int, s *goquery.Selection) {
		kind := vorhaben.KindOther
		if isHeading(s.Get(0)) {
			kind = vorhaben.KindHeading
		}
		nodes = append(nodes, vorhaben.ContentNode{
			Kind: kind,
			Text: strings.TrimSpace(s.Text()),
		})
	})
	return nodes
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	default:
		return false
	}
}

// links reads one link per child of the link box. The child's first element
// carries the title and href attributes.
func (p *Parser) links(sel *goquery.Selection) []vorhaben.Link {
	links := []vorhaben.Link{}
	sel.Children().Each(func(_ int, item *goquery.Selection) {
		anchor := item.Children().First()
		href, ok := anchor.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}

		title, _ := anchor.Attr("title")
		title = strings.TrimSpace(title)
		if title == "" {
			title = strings.TrimSpace(anchor.Text())
		}

		links = append(links, vorhaben.Link{
			Title: title,
			URL:   p.resolve(href),
		})
	})
	return links
}

// resolve makes href absolute if a base URL is configured.
// Non-HTTP links and unparsable hrefs are returned unchanged.
func (p *Parser) resolve(href string) string {
	if p.base == nil || isNonHTTPLink(href) {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.base.ResolveReference(ref).String()
}

// isNonHTTPLink checks if a href is a non-HTTP link.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
