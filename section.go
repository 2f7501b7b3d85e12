package vorhaben

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SectionName is a canonical topic a project page is organized under.
type SectionName string

// Canonical sections. SectionIntroduction is implicit: it collects content
// that precedes the first recognized heading and is never started by one.
const (
	SectionIntroduction         SectionName = "Introduction"
	SectionLastDecision         SectionName = "Last decision on the project"
	SectionProcessingStatus     SectionName = "Current processing status"
	SectionTimeline             SectionName = "Planned implementation timeline / next steps"
	SectionCosts                SectionName = "Costs if quantifiable"
	SectionAffectedArea         SectionName = "Affected area"
	SectionAffectedTopics       SectionName = "Main affected topics"
	SectionCitizenParticipation SectionName = "Is citizen participation planned"
)

// SeparatorText is the heading text used on project pages as a layout break.
const SeparatorText = "-"

// headedSections are the sections a heading can start.
var headedSections = []SectionName{
	SectionLastDecision,
	SectionProcessingStatus,
	SectionTimeline,
	SectionCosts,
	SectionAffectedArea,
	SectionAffectedTopics,
	SectionCitizenParticipation,
}

// builtinAliases maps raw heading text to its canonical section.
var builtinAliases = func() map[string]SectionName {
	m := make(map[string]SectionName, len(headedSections)+1)
	for _, name := range headedSections {
		m[string(name)] = name
	}
	m["Last political decision on the project"] = SectionLastDecision
	return m
}()

// Sections returns every canonical section in presentation order,
// starting with SectionIntroduction.
func Sections() []SectionName {
	return append([]SectionName{SectionIntroduction}, headedSections...)
}

// ParseSectionName returns the canonical section with the given label.
func ParseSectionName(label string) (SectionName, bool) {
	for _, name := range Sections() {
		if string(name) == label {
			return name, true
		}
	}
	return "", false
}

// ClassKind is the outcome of classifying a single node.
type ClassKind int

// Classification outcomes.
const (
	ClassContent ClassKind = iota
	ClassStartsSection
	ClassSeparator
	ClassUnrecognized
)

func (k ClassKind) String() string {
	switch k {
	case ClassContent:
		return "content"
	case ClassStartsSection:
		return "starts-section"
	case ClassSeparator:
		return "separator"
	case ClassUnrecognized:
		return "unrecognized-heading"
	default:
		return fmt.Sprintf("ClassKind(%d)", int(k))
	}
}

// Classification describes how the extractor treats a node.
// Section is only set when Kind is ClassStartsSection.
type Classification struct {
	Kind    ClassKind
	Section SectionName
}

// Classifier decides which section, if any, a heading starts.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	aliases map[string]SectionName
}

var defaultClassifier = &Classifier{aliases: builtinAliases}

// DefaultClassifier returns the classifier with only the built-in aliases.
func DefaultClassifier() *Classifier {
	return defaultClassifier
}

// NewClassifier returns a classifier that recognizes the built-in headings
// plus the given extra aliases. Alias keys are matched against trimmed
// heading text and must stay distinct after trimming. An alias cannot shadow
// the separator or target the introduction.
func NewClassifier(extra map[string]SectionName) (*Classifier, error) {
	aliases := make(map[string]SectionName, len(builtinAliases)+len(extra))
	for text, name := range builtinAliases {
		aliases[text] = name
	}
	seen := make(map[string]bool, len(extra))
	for text, name := range extra {
		text = strings.TrimSpace(text)
		if seen[text] {
			return nil, Errorf(EINVALID, "alias %q is defined more than once", text)
		}
		seen[text] = true
		if text == "" {
			return nil, Errorf(EINVALID, "alias for %q has empty heading text", name)
		}
		if text == SeparatorText {
			return nil, Errorf(EINVALID, "alias %q is reserved for separators", text)
		}
		if _, ok := ParseSectionName(string(name)); !ok || name == SectionIntroduction {
			return nil, Errorf(EINVALID, "alias %q targets unknown section %q", text, name)
		}
		aliases[text] = name
	}
	return &Classifier{aliases: aliases}, nil
}

// Classify reports how the extractor must treat node. It panics if the node
// kind is undefined, since that means the tokenizer is broken.
func (c *Classifier) Classify(node ContentNode) Classification {
	switch node.Kind {
	case KindOther:
		return Classification{Kind: ClassContent}
	case KindHeading:
	default:
		panic(fmt.Sprintf("vorhaben: content node has undefined kind %d", int(node.Kind)))
	}

	text := strings.TrimSpace(node.Text)
	// The separator literal wins over any alias.
	if text == SeparatorText {
		return Classification{Kind: ClassSeparator}
	}
	if name, ok := c.aliases[text]; ok {
		return Classification{Kind: ClassStartsSection, Section: name}
	}
	return Classification{Kind: ClassUnrecognized}
}

// Extraction is the result of a single pass over a page's nodes.
type Extraction struct {
	// Sections holds content grouped by section, in first-appearance order.
	Sections SectionMap

	// Unrecognized holds the text of headings outside the vocabulary,
	// in document order.
	Unrecognized []string

	// Separators counts separator headings.
	Separators int

	// Discarded counts content nodes that followed a separator or an
	// unrecognized heading and therefore belong to no section.
	Discarded int
}

// Extract walks nodes once and groups content under the active section.
//
// The introduction is active until the first heading and appears only if
// content precedes that heading, or if there are no nodes at all. A
// recognized heading activates its canonical section, appending to it if the
// section already occurred. A separator or unrecognized heading ends the
// active section and discards everything up to the next recognized heading.
func (c *Classifier) Extract(nodes []ContentNode) *Extraction {
	const (
		discarding = -1
		beforeHead = -2
	)

	x := &Extraction{Sections: SectionMap{}}
	index := make(map[SectionName]int)
	active := beforeHead // index into x.Sections once a section is open

	for _, node := range nodes {
		class := c.Classify(node)
		switch class.Kind {
		case ClassContent:
			if active == discarding {
				x.Discarded++
				continue
			}
			if active == beforeHead {
				x.Sections = append(x.Sections, Section{Name: SectionIntroduction, Lines: []string{}})
				active = 0
			}
			x.Sections[active].Lines = append(x.Sections[active].Lines, strings.TrimSpace(node.Text))
		case ClassStartsSection:
			i, ok := index[class.Section]
			if !ok {
				i = len(x.Sections)
				index[class.Section] = i
				x.Sections = append(x.Sections, Section{Name: class.Section, Lines: []string{}})
			}
			active = i
		case ClassSeparator:
			x.Separators++
			active = discarding
		case ClassUnrecognized:
			x.Unrecognized = append(x.Unrecognized, strings.TrimSpace(node.Text))
			active = discarding
		}
	}

	if len(nodes) == 0 {
		x.Sections = SectionMap{{Name: SectionIntroduction, Lines: []string{}}}
	}
	return x
}

// ExtractSections groups nodes into sections using the built-in vocabulary.
func ExtractSections(nodes []ContentNode) SectionMap {
	return defaultClassifier.Extract(nodes).Sections
}

// Section is one named topic with its content lines in document order.
type Section struct {
	Name  SectionName
	Lines []string
}

// SectionMap is an ordered mapping from section name to content lines.
type SectionMap []Section

// Get returns the lines of the named section.
func (m SectionMap) Get(name SectionName) ([]string, bool) {
	for _, s := range m {
		if s.Name == name {
			return s.Lines, true
		}
	}
	return nil, false
}

// Names returns the section names in order.
func (m SectionMap) Names() []SectionName {
	names := make([]SectionName, len(m))
	for i, s := range m {
		names[i] = s.Name
	}
	return names
}

// LineCount returns the total number of lines across all sections.
func (m SectionMap) LineCount() int {
	var n int
	for _, s := range m {
		n += len(s.Lines)
	}
	return n
}

// MarshalJSON encodes the map as a JSON object, keeping section order.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(s.Name))
		if err != nil {
			return nil, err
		}
		lines := s.Lines
		if lines == nil {
			lines = []string{}
		}
		value, err := json.Marshal(lines)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
