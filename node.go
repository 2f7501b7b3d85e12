package vorhaben

// NodeKind distinguishes heading nodes from everything else.
// The zero value is not a valid kind.
type NodeKind int

// Node kinds produced by a tokenizer.
const (
	KindHeading NodeKind = iota + 1
	KindOther
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindOther:
		return "other"
	default:
		return "undefined"
	}
}

// ContentNode is one child of a page's content region.
type ContentNode struct {
	Kind NodeKind
	Text string
}

// Heading returns a heading node with the given text.
func Heading(text string) ContentNode {
	return ContentNode{Kind: KindHeading, Text: text}
}

// Content returns a non-heading node with the given text.
func Content(text string) ContentNode {
	return ContentNode{Kind: KindOther, Text: text}
}
