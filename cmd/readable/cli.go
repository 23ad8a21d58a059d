package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/readable"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   readable.Fetcher
	Extractor readable.Extractor
	Converter readable.Converter

	// Limiter spaces out requests to the same host.
	Limiter readable.DomainLimiter

	// Writer stores extracted articles. Nil when neither --out nor --db
	// is given.
	Writer readable.ArticleWriter

	// Articles lists stored articles.
	Articles readable.ArticleService

	// References are the extractors available to compare against.
	References map[string]readable.Extractor

	// RetryDelays overrides the fetch backoff, mainly for tests.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log each step to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract the readable content of URLs or files"`
	Compare CompareCmd `cmd:"" help:"Compare extraction with a reference extractor"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
}

// ExtractFlags are the extraction settings shared by extract and compare.
type ExtractFlags struct {
	Config     string        `help:"YAML or JSON file with extraction options"`
	Strict     bool          `help:"Reject malformed HTML"`
	NoMetadata bool          `name:"no-metadata" help:"Ignore Open Graph, Twitter, JSON-LD and Dublin Core metadata"`
	BaseURL    string        `name:"base-url" help:"Resolve relative links against this URL"`
	Weighting  string        `help:"Score propagation to ancestors (equal, level, halving)"`
	MaxParents int           `name:"max-parents" default:"-1" help:"Ancestor levels a score propagates to"`
	MinLength  int           `name:"min-length" default:"-1" help:"Minimum text length of a scored node"`
	Timeout    time.Duration `default:"10s" help:"Fetch timeout per source"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Sources []string `arg:"" help:"URLs or file paths"`

	ExtractFlags `embed:""`

	Format      string `short:"f" enum:"html,text,markdown,json" default:"text" help:"Output format (html, text, markdown, json)"`
	Concurrency int    `short:"c" default:"4" help:"Sources processed at once"`
	Out         string `type:"path" help:"Also write each article as Markdown under this directory"`
	DB          string `type:"path" help:"Also store each article in this SQLite database"`
	NoSanitize  bool   `name:"no-sanitize" help:"Skip HTML sanitizing of the content"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source string `arg:"" help:"URL or file path"`

	ExtractFlags `embed:""`

	Reference string `short:"r" enum:"readability,trafilatura" default:"readability" help:"Reference extractor (readability, trafilatura)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	DB     string `type:"path" required:"" help:"SQLite database written by extract --db"`
	Source string `help:"Only list articles from this source"`
	Limit  int    `default:"50" help:"Maximum number of articles"`
}
