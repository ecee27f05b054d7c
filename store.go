package mailsift

import (
	"context"
	"time"
)

// Crawl summarizes one finished crawl run.
type Crawl struct {
	ID           string        `json:"id"`
	StartURL     string        `json:"startUrl"`
	PagesScanned int           `json:"pagesScanned"`
	EmailsFound  int           `json:"emailsFound"`
	Duration     time.Duration `json:"duration"`
	StartedAt    time.Time     `json:"startedAt"`
}

// Validate returns an error if the crawl contains invalid fields.
func (c *Crawl) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "crawl start URL required")
	}
	return nil
}

// PageScan records one successfully scanned page: where it was, what
// it was called, a hash of its visible text, and how many emails it
// contributed.
type PageScan struct {
	ID          string    `json:"id"`
	CrawlID     string    `json:"crawlId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	EmailCount  int       `json:"emailCount"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// CrawlService persists finished crawl runs. It stores results and
// history only; live crawl state (the visited set, the frontier) is
// never persisted and every crawl starts from scratch.
type CrawlService interface {
	// CreateCrawl stores a finished crawl together with its page scans
	// and email records.
	CreateCrawl(ctx context.Context, crawl *Crawl, pages []*PageScan, records []EmailRecord) error

	// FindCrawlByID retrieves a crawl by ID.
	// Returns ENOTFOUND if the crawl does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)

	// FindCrawls lists stored crawls, most recent first.
	FindCrawls(ctx context.Context) ([]*Crawl, error)

	// FindRecordsByCrawl returns a crawl's records in discovery order.
	// Returns ENOTFOUND if the crawl does not exist.
	FindRecordsByCrawl(ctx context.Context, crawlID string) ([]EmailRecord, error)
}
