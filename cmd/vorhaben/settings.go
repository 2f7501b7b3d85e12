package main

import (
	"cmp"
	"regexp"
	"time"

	"github.com/offenesjena/vorhaben"
	"github.com/offenesjena/vorhaben/crawl"
	vhttp "github.com/offenesjena/vorhaben/http"
	"github.com/offenesjena/vorhaben/yaml"
)

// DefaultOutput is the document written when no output is configured.
const DefaultOutput = "VorhabenJena.json"

// Settings is the effective configuration of a run: built-in defaults,
// overridden by the configuration file, overridden by flags.
type Settings struct {
	IndexURL    string
	PageURL     string
	Pattern     *regexp.Regexp
	Concurrency int
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	Output      string
	DB          string
	Validate    bool
	Classifier  *vorhaben.Classifier
}

// Overrides are the settings given on the command line. Zero values are unset.
type Overrides struct {
	IndexURL    string
	PageURL     string
	Concurrency int
	Timeout     time.Duration
	Output      string
	DB          string
	NoValidate  bool
}

// ResolveSettings merges defaults, cfg and flags.
func ResolveSettings(cfg *yaml.Config, o Overrides) (*Settings, error) {
	if cfg == nil {
		cfg = &yaml.Config{}
	}
	if o.Concurrency < 0 {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "concurrency must not be negative")
	}
	if o.Timeout < 0 {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "timeout must not be negative")
	}

	pattern, err := cfg.Pattern()
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		pattern = crawl.DefaultPagePattern
	}

	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, err
	}

	return &Settings{
		IndexURL:    cmp.Or(o.IndexURL, cfg.IndexURL, vorhaben.DefaultBrokenXMLURL),
		PageURL:     cmp.Or(o.PageURL, cfg.PageURL, crawl.DefaultPageURL),
		Pattern:     pattern,
		Concurrency: cmp.Or(o.Concurrency, cfg.Concurrency, crawl.DefaultConcurrency),
		Timeout:     cmp.Or(o.Timeout, cfg.Timeout, vhttp.DefaultFetchTimeout),
		UserAgent:   cmp.Or(cfg.UserAgent, vhttp.DefaultUserAgent),
		MaxBodySize: cmp.Or(cfg.MaxBodySize, vhttp.DefaultMaxBodySize),
		Output:      cmp.Or(o.Output, cfg.Output, DefaultOutput),
		DB:          cmp.Or(o.DB, cfg.DB),
		Validate:    !o.NoValidate,
		Classifier:  classifier,
	}, nil
}
