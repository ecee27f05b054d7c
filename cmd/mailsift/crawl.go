package main

import (
	"fmt"
	"time"

	"github.com/mailsift/mailsift"
	"github.com/mailsift/mailsift/crawl"
	"github.com/mailsift/mailsift/fs"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := mailsift.CrawlConfig{
		StartURL:    c.URL,
		MaxPages:    c.MaxPages,
		Workers:     c.Workers,
		Timeout:     c.Timeout,
		DedupEmails: c.Dedup,
	}

	// Resolve the output path before crawling so a bad URL fails fast.
	outputPath := c.Output
	if outputPath == "" {
		path, err := fs.ExportPath(c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
			return err
		}
		outputPath = path
	}

	startedAt := time.Now()

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressEmail:
			fmt.Fprintf(deps.Stdout, "found %s  %s\n", event.Record.Email, event.Record.PageURL)
		case crawl.ProgressPage:
			if !c.Quiet {
				fmt.Fprintf(deps.Stderr, "  scanned %s (%d pages, %d emails)\n",
					event.URL, event.PagesScanned, event.EmailsFound)
			}
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, cfg, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scanned %d pages in %s, found %d emails\n",
		result.PagesScanned, result.Duration.Round(time.Millisecond), len(result.Records))

	if err := fs.SaveCSV(outputPath, result.Records); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing CSV: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", outputPath)

	summary := &mailsift.Crawl{
		StartURL:     c.URL,
		PagesScanned: result.PagesScanned,
		EmailsFound:  len(result.Records),
		Duration:     result.Duration,
		StartedAt:    startedAt,
	}
	if err := deps.Crawls.CreateCrawl(deps.Ctx, summary, result.Pages, result.Records); err != nil {
		fmt.Fprintf(deps.Stderr, "error saving crawl: %s\n", mailsift.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Saved crawl %s\n", summary.ID)

	return nil
}
