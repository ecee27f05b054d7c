package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/beevik/etree"
	"github.com/mailsift/mailsift"
	"golang.org/x/sync/errgroup"
)

// maxChildSitemaps caps how many child sitemaps of a sitemap index are
// fetched. Large sites publish hundreds; seeding needs only a sample
// since the crawl discovers the rest by following links.
const maxChildSitemaps = 10

// childSitemapConcurrency limits parallel child sitemap fetches.
const childSitemapConcurrency = 4

// Ensure SitemapSeeder implements mailsift.SitemapSeeder.
var _ mailsift.SitemapSeeder = (*SitemapSeeder)(nil)

// SitemapSeeder discovers page URLs from a site's /sitemap.xml to seed
// the crawl frontier. Both plain urlset sitemaps and one level of
// sitemapindex nesting are supported.
type SitemapSeeder struct {
	client    *http.Client
	userAgent string
}

// NewSitemapSeeder creates a SitemapSeeder with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSeeder(client *http.Client) *SitemapSeeder {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSeeder{client: client, userAgent: DefaultUserAgent}
}

// Discover fetches <scheme>://<host>/sitemap.xml for the start URL's
// host and returns the same-host page URLs it lists, canonicalized the
// same way discovered links are. A missing or malformed sitemap is not
// an error; the result is simply empty.
func (s *SitemapSeeder) Discover(ctx context.Context, startURL string) ([]string, error) {
	base, err := url.Parse(startURL)
	if err != nil {
		return nil, mailsift.Errorf(mailsift.EINVALID, "invalid start URL: %v", err)
	}

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", base.Scheme, base.Host)
	doc, err := s.fetchXML(ctx, sitemapURL)
	if err != nil || doc == nil {
		return nil, nil
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	switch root.Tag {
	case "urlset":
		return s.collectPageURLs(root, startURL, base.Host), nil
	case "sitemapindex":
		return s.discoverFromIndex(ctx, root, startURL, base.Host)
	default:
		return nil, nil
	}
}

// discoverFromIndex fetches the index's child sitemaps concurrently
// and merges their page URLs, dropping duplicates.
func (s *SitemapSeeder) discoverFromIndex(ctx context.Context, root *etree.Element, startURL, baseHost string) ([]string, error) {
	var children []string
	for _, sm := range root.SelectElements("sitemap") {
		if loc := sm.SelectElement("loc"); loc != nil {
			children = append(children, loc.Text())
		}
		if len(children) >= maxChildSitemaps {
			break
		}
	}

	results := make([][]string, len(children))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(childSitemapConcurrency)
	for i, child := range children {
		i, child := i, child
		g.Go(func() error {
			doc, err := s.fetchXML(gctx, child)
			if err != nil || doc == nil {
				return nil // a broken child sitemap loses its URLs, nothing more
			}
			if childRoot := doc.Root(); childRoot != nil && childRoot.Tag == "urlset" {
				results[i] = s.collectPageURLs(childRoot, startURL, baseHost)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, batch := range results {
		for _, u := range batch {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// collectPageURLs extracts loc entries from a urlset element, keeping
// only same-host URLs in canonical form.
func (s *SitemapSeeder) collectPageURLs(urlset *etree.Element, startURL, baseHost string) []string {
	var urls []string
	for _, u := range urlset.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		resolved := mailsift.ResolveLink(loc.Text(), startURL)
		if resolved == "" || !mailsift.IsInternalLink(resolved, baseHost) {
			continue
		}
		urls = append(urls, resolved)
	}
	return urls
}

// fetchXML GETs a URL and parses the body as XML. Returns nil without
// an error for non-200 responses so missing sitemaps stay silent.
func (s *SitemapSeeder) fetchXML(ctx context.Context, rawURL string) (*etree.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, err
	}
	return doc, nil
}
