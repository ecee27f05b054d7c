package mailsift

import (
	"context"
	"time"
)

// CrawlConfig holds the settings for one crawl. It is immutable for
// the crawl's duration.
type CrawlConfig struct {
	StartURL    string
	MaxPages    int
	Workers     int
	Timeout     time.Duration
	DedupEmails bool
}

// Validate returns an error if the configuration cannot start a crawl.
func (c *CrawlConfig) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	if c.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if c.Workers <= 0 {
		return Errorf(EINVALID, "worker count must be positive")
	}
	return nil
}

// EmailRecord is one found email address with its provenance: the page
// it was discovered on and that page's title.
type EmailRecord struct {
	Email     string `json:"email"`
	PageURL   string `json:"pageUrl"`
	PageTitle string `json:"pageTitle"`
}

// Page is the parsed form of one fetched document.
type Page struct {
	FinalURL string   // post-redirect URL
	Title    string   // document title, or a placeholder when absent
	Text     string   // visible text, space separated
	Links    []string // resolved, canonicalized hrefs, internal and external
}

// Fetcher retrieves raw HTML over the network. Implementations must be
// safe for concurrent use by multiple workers sharing one
// connection-pooling client.
type Fetcher interface {
	// Fetch issues a single GET with the configured timeout, following
	// redirects transparently. finalURL is the post-redirect URL. Any
	// non-200 status or transport error is returned as err.
	Fetch(ctx context.Context, url string) (html string, finalURL string, err error)

	// Close releases client resources.
	Close() error
}

// PageParser turns raw HTML into a Page.
type PageParser interface {
	// Parse extracts the title (or a placeholder when the document has
	// none), the visible text, and all anchor hrefs resolved against
	// finalURL.
	Parse(html, finalURL string) (*Page, error)
}

// SitemapSeeder discovers extra seed URLs for a host.
type SitemapSeeder interface {
	// Discover returns same-host page URLs listed in the site's
	// sitemap. A missing sitemap is not an error; the result is empty.
	Discover(ctx context.Context, startURL string) ([]string, error)
}
