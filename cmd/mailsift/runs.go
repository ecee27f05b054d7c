package main

import (
	"fmt"
	"time"

	"github.com/mailsift/mailsift"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.show(deps)
	}

	crawls, err := deps.Crawls.FindCrawls(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawls found. Use 'mailsift crawl' to run one.")
		return nil
	}

	for _, crawl := range crawls {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d pages  %d emails\n",
			crawl.ID,
			crawl.StartedAt.Format(time.RFC3339),
			crawl.StartURL,
			crawl.PagesScanned,
			crawl.EmailsFound,
		)
	}

	return nil
}

// show prints one crawl's summary and records.
func (c *RunsCmd) show(deps *Dependencies) error {
	crawl, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s\n", crawl.StartURL)
	fmt.Fprintf(deps.Stdout, "started %s, scanned %d pages in %s\n",
		crawl.StartedAt.Format(time.RFC3339),
		crawl.PagesScanned,
		crawl.Duration.Round(time.Millisecond),
	)

	records, err := deps.Crawls.FindRecordsByCrawl(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "no emails found")
		return nil
	}

	for _, record := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", record.Email, record.PageURL, record.PageTitle)
	}

	return nil
}
