package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/offenesjena/vorhaben"
	"github.com/offenesjena/vorhaben/crawl"
	"github.com/offenesjena/vorhaben/fs"
	"github.com/offenesjena/vorhaben/goquery"
	vhttp "github.com/offenesjena/vorhaben/http"
	"github.com/offenesjena/vorhaben/jsonschema"
	vslog "github.com/offenesjena/vorhaben/slog"
	"github.com/offenesjena/vorhaben/sqlite"
	"github.com/offenesjena/vorhaben/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding snapshots. Opened only when a path is set.
	DB *sqlite.DB

	// Now stamps the generated document. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vorhaben"),
		kong.Description("Scrape the City of Jena's project list into a JSON document."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vorhaben --help' to see available commands")
	}

	if arg := args[0]; arg == "help" || arg == "--help" || arg == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := yaml.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var o Overrides
	switch cmd {
	case "scrape":
		o = Overrides{
			IndexURL:    cli.Scrape.IndexURL,
			PageURL:     cli.Scrape.PageURL,
			Concurrency: cli.Scrape.Concurrency,
			Timeout:     cli.Scrape.Timeout,
			Output:      cli.Scrape.Output,
			DB:          cli.Scrape.DB,
			NoValidate:  cli.Scrape.NoValidate,
		}
	case "ids":
		o = Overrides{IndexURL: cli.IDs.IndexURL, Timeout: cli.IDs.Timeout}
	case "runs":
		o = Overrides{DB: cli.Runs.DB}
	}

	settings, err := ResolveSettings(cfg, o)
	if err != nil {
		return err
	}
	deps.Settings = settings
	deps.Classifier = settings.Classifier
	deps.Parser = goquery.NewParser(goquery.WithBaseURL(settings.PageURL))

	if cmd == "scrape" || cmd == "ids" {
		var fetcher vorhaben.Fetcher = vhttp.NewFetcher(
			vhttp.WithTimeout(settings.Timeout),
			vhttp.WithUserAgent(settings.UserAgent),
			vhttp.WithMaxBodySize(settings.MaxBodySize),
		)
		fetcher = vslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer fetcher.Close()

		deps.IDs = vslog.NewLoggingIDSource(&crawl.IndexSource{
			Fetcher:  fetcher,
			IndexURL: settings.IndexURL,
			Pattern:  settings.Pattern,
		}, deps.Logger)

		deps.Scraper = vslog.NewLoggingScraper(&crawl.PageScraper{
			Fetcher:    fetcher,
			Parser:     deps.Parser,
			Classifier: settings.Classifier,
			PageURL:    settings.PageURL,
		}, deps.Logger)
	}

	if cmd == "scrape" {
		var opts []fs.Option
		if settings.Validate {
			validator, err := jsonschema.NewValidator()
			if err != nil {
				return fmt.Errorf("failed to load document schema: %w", err)
			}
			opts = append(opts, fs.WithValidator(validator))
		}
		deps.Writer = vslog.NewLoggingDocumentWriter(fs.NewJSONWriter(settings.Output, opts...), deps.Logger)
	}

	if (cmd == "scrape" || cmd == "runs") && settings.DB != "" {
		m.DB = sqlite.NewDB(settings.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set VORHABEN_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", settings.DB, err)
		}
		defer m.Close()

		snapshots := sqlite.NewSnapshotService(m.DB)
		snapshots.Now = m.Now
		deps.Snapshots = snapshots
	}

	return kongCtx.Run(deps)
}
