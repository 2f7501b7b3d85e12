package vorhaben

import (
	"context"
	"time"
)

// Default envelope values for the published document.
const (
	DefaultIndexURL      = "http://www.jena.de/de/stadt_verwaltung/b_rger-services/vorhabenliste/411894?max=50"
	DefaultBrokenXMLURL  = "http://www.jena.de/de/stadt_verwaltung/b_rger-services/vorhabenliste/411894?template_id=5830&aid=&kid=&max=50&skip=0"
	DefaultDescription   = "Vorhabenliste der Stadt Jena"
	DefaultSourceLicense = "none - Assumed amtliches Werk"
)

// DataSource attributes the published data to its origin.
type DataSource struct {
	Author       string `json:"author"`
	URL          string `json:"url"`
	BrokenXMLURL string `json:"brokenXmlUrl"`
	License      string `json:"license"`
}

// DataLiberator identifies who extracted and republished the data.
type DataLiberator struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	License string `json:"license"`
}

// Document is the persisted output: page records wrapped in a metadata envelope.
type Document struct {
	Description   string        `json:"description"`
	DataSource    DataSource    `json:"dataSource"`
	DataLiberator DataLiberator `json:"dataLiberator"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	Vorhaben      []*PageRecord `json:"vorhaben"`
}

// NewDocument wraps records, which must already be sorted by id,
// in the default envelope.
func NewDocument(records []*PageRecord, generatedAt time.Time) *Document {
	if records == nil {
		records = []*PageRecord{}
	}
	return &Document{
		Description: DefaultDescription,
		DataSource: DataSource{
			URL:          DefaultIndexURL,
			BrokenXMLURL: DefaultBrokenXMLURL,
			License:      DefaultSourceLicense,
		},
		DataLiberator: DataLiberator{
			Name:    "Offenes Jena",
			URL:     "http://offenes-jena.de",
			License: "CC-BY-SA-4.0",
		},
		GeneratedAt: generatedAt.UTC().Truncate(time.Second),
		Vorhaben:    records,
	}
}

// DocumentWriter persists a document.
type DocumentWriter interface {
	// WriteDocument leaves any previous output untouched if it fails.
	WriteDocument(ctx context.Context, doc *Document) error
}

// RunDiff describes how a run's records differ from the previous run.
type RunDiff struct {
	RunID     string
	Previous  string // empty on the first run
	Added     []string
	Changed   []string
	Removed   []string
	Unchanged int
}

// Run is a stored snapshot of one scrape.
type Run struct {
	ID          string
	CreatedAt   time.Time
	RecordCount int
}

// RunFilter restricts the runs returned by FindRuns.
type RunFilter struct {
	Limit  int
	Offset int
}

// SnapshotService stores a fingerprint of every run for change reporting.
type SnapshotService interface {
	// SaveRun stores records as a new run and diffs them against the
	// most recent earlier run.
	SaveRun(ctx context.Context, records []*PageRecord) (*RunDiff, error)

	// FindRuns returns stored runs, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}
