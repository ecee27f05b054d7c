package main

import (
	"context"
	"io"
	"time"

	"github.com/mailsift/mailsift"
	"github.com/mailsift/mailsift/crawl"
	"github.com/mailsift/mailsift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Crawls  mailsift.CrawlService
	Crawler *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl a website and extract email addresses"`
	Runs   RunsCmd   `cmd:"" help:"List past crawls or show one crawl's results"`
	Export ExportCmd `cmd:"" help:"Export a stored crawl's emails to CSV"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL      string        `arg:"" help:"Website URL to crawl"`
	MaxPages int           `short:"m" default:"100" help:"Maximum pages to scan"`
	Workers  int           `short:"w" default:"20" help:"Concurrent fetch limit"`
	Timeout  time.Duration `short:"t" default:"5s" help:"Per-request timeout"`
	Dedup    bool          `negatable:"" default:"true" help:"Keep each email once (disable with --no-dedup)"`
	Sitemap  bool          `help:"Seed the crawl from sitemap.xml"`
	Output   string        `short:"o" help:"CSV output path (default emails_<host>.csv)"`
	Quiet    bool          `short:"q" help:"Only print found emails and the final summary"`
	Verbose  bool          `short:"v" help:"Log every fetch"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	ID string `arg:"" optional:"" help:"Crawl ID to show in detail"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Crawl ID to export"`
	Output string `short:"o" help:"CSV output path (default emails_<host>.csv)"`
}
