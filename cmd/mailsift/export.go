package main

import (
	"fmt"

	"github.com/mailsift/mailsift"
	"github.com/mailsift/mailsift/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	crawl, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
		return err
	}

	records, err := deps.Crawls.FindRecordsByCrawl(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
		return err
	}

	outputPath := c.Output
	if outputPath == "" {
		path, err := fs.ExportPath(crawl.StartURL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailsift.ErrorMessage(err))
			return err
		}
		outputPath = path
	}

	if err := fs.SaveCSV(outputPath, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing CSV: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d emails to %s\n", len(records), outputPath)
	return nil
}
