package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readable"
	"github.com/fwojciec/readable/batch"
	"github.com/fwojciec/readable/bluemonday"
	"github.com/fwojciec/readable/extract"
	"github.com/fwojciec/readable/fs"
	"github.com/fwojciec/readable/htmltomarkdown"
	rhttp "github.com/fwojciec/readable/http"
	"github.com/fwojciec/readable/readability"
	rslog "github.com/fwojciec/readable/slog"
	"github.com/fwojciec/readable/sqlite"
	"github.com/fwojciec/readable/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database opened for --db or list.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readable"),
		kong.Description("Extract the main content of web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readable --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "extract":
		wireExtract(deps, &cli.Extract.ExtractFlags, !cli.Extract.NoSanitize)
		deps.Converter = htmltomarkdown.NewConverter()
		deps.Limiter = batch.NewDomainLimiter(1.0)

		var writers []readable.ArticleWriter
		if cli.Extract.Out != "" {
			writers = append(writers, fs.NewWriter(cli.Extract.Out))
		}
		if cli.Extract.DB != "" {
			if err := m.openDB(cli.Extract.DB); err != nil {
				return err
			}
			writers = append(writers, sqlite.NewArticleService(m.DB))
		}
		if len(writers) > 0 {
			var w readable.ArticleWriter = multiWriter(writers)
			if deps.Logger != nil {
				w = rslog.NewLoggingArticleWriter(w, deps.Logger)
			}
			deps.Writer = w
		}
	case "compare":
		wireExtract(deps, &cli.Compare.ExtractFlags, true)
		deps.References = map[string]readable.Extractor{
			"readability": readability.NewExtractor(),
			"trafilatura": trafilatura.NewExtractor(),
		}
	case "list":
		if err := m.openDB(cli.List.DB); err != nil {
			return err
		}
		deps.Articles = sqlite.NewArticleService(m.DB)
	}
	if deps.Fetcher != nil {
		defer deps.Fetcher.Close()
	}

	return kongCtx.Run(deps)
}

// wireExtract sets up the fetcher and our extractor.
func wireExtract(deps *Dependencies, flags *ExtractFlags, sanitize bool) {
	var fetcher readable.Fetcher = &SourceFetcher{
		Web:  rhttp.NewFetcher(rhttp.WithTimeout(flags.Timeout)),
		File: fs.NewFetcher(),
	}
	ex := extract.NewExtractor()
	if sanitize {
		ex.Sanitizer = bluemonday.NewSanitizer()
	}
	var extractor readable.Extractor = ex
	if deps.Logger != nil {
		fetcher = rslog.NewLoggingFetcher(fetcher, deps.Logger)
		ex.Scorer = rslog.NewLoggingScorer(ex.Scorer, deps.Logger)
		extractor = rslog.NewLoggingExtractor(ex, deps.Logger)
	}
	deps.Fetcher = fetcher
	deps.Extractor = extractor
}

func (m *Main) openDB(path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// multiWriter stores each record with every writer in turn.
type multiWriter []readable.ArticleWriter

func (w multiWriter) CreateArticle(ctx context.Context, rec *readable.ArticleRecord) error {
	var errs []error
	for _, next := range w {
		errs = append(errs, next.CreateArticle(ctx, rec))
	}
	return errors.Join(errs...)
}
