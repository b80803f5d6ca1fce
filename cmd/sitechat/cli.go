package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jmilosz/sitechat"
	"github.com/jmilosz/sitechat/crawl"
	"github.com/jmilosz/sitechat/sqlite"
	"github.com/jmilosz/sitechat/vectorize"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB      *sqlite.DB
	Sites   sitechat.SiteService
	Pages   sitechat.PageService
	Store   sitechat.VectorStore
	Exports sitechat.ExportStore

	// Command-specific wiring, set in Run based on the parsed command.
	Crawler   *crawl.Crawler
	Pipeline  *vectorize.Pipeline
	Auditor   *vectorize.Auditor
	Deleter   *vectorize.Deleter
	Completer sitechat.Completer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape    ScrapeCmd    `cmd:"" help:"Crawl a website and build its vector index"`
	Ask       AskCmd       `cmd:"" help:"Ask a question about a crawled website"`
	List      ListCmd      `cmd:"" help:"List registered websites"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a website and all its data"`
	Reconcile ReconcileCmd `cmd:"" help:"Clear stale vector index references"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string        `arg:"" help:"Website base URL"`
	MaxPages int           `short:"n" default:"50" help:"Page budget for the crawl"`
	Delay    time.Duration `short:"d" default:"1s" help:"Minimum delay between requests per domain"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	URL      string `arg:"" help:"Website base URL"`
	Question string `arg:"" help:"Question to ask about the website"`
	Backend  string `default:"ollama" enum:"ollama,gemini" help:"Completion backend (ollama or gemini)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Website base URL"`
	Force bool   `help:"Confirm deletion"`
}

// ReconcileCmd is the "reconcile" subcommand.
type ReconcileCmd struct{}
