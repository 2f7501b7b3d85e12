package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/offenesjena/vorhaben"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Settings   *Settings
	IDs        vorhaben.IDSource
	Scraper    vorhaben.Scraper
	Parser     vorhaben.PageParser
	Classifier *vorhaben.Classifier
	Writer     vorhaben.DocumentWriter
	Snapshots  vorhaben.SnapshotService
	Now        func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Configuration file (default: vorhaben/config.yaml in the XDG config directory)" placeholder:"FILE"`
	Verbose bool   `short:"v" help:"Log every request and page"`

	Scrape  ScrapeCmd  `cmd:"" help:"Scrape all projects and write the JSON document"`
	IDs     IDsCmd     `cmd:"" name:"ids" help:"List project ids found on the index page"`
	Extract ExtractCmd `cmd:"" help:"Extract the record of a saved project page"`
	Runs    RunsCmd    `cmd:"" help:"List stored snapshot runs"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Output      string        `short:"o" help:"Output file (default: VorhabenJena.json)" placeholder:"FILE"`
	Concurrency int           `short:"j" help:"Pages scraped in parallel (default: 8)"`
	Timeout     time.Duration `help:"Per-request timeout (default: 10s)"`
	IndexURL    string        `name:"index-url" help:"Project list URL" placeholder:"URL"`
	PageURL     string        `name:"page-url" help:"Prefix a project id is appended to" placeholder:"URL"`
	DB          string        `name:"db" env:"VORHABEN_DB" help:"Snapshot database for change reports" placeholder:"PATH"`
	NoValidate  bool          `name:"no-validate" help:"Skip schema validation of the output"`
}

// IDsCmd is the "ids" subcommand.
type IDsCmd struct {
	IndexURL string        `name:"index-url" help:"Project list URL" placeholder:"URL"`
	Timeout  time.Duration `help:"Request timeout (default: 10s)"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" type:"existingfile" help:"Saved project page (HTML)"`
	ID   string `help:"Id stored in the record (default: digits of the file name)"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	DB    string `name:"db" env:"VORHABEN_DB" help:"Snapshot database" placeholder:"PATH"`
	Limit int    `short:"n" default:"10" help:"Number of runs to show"`
}
