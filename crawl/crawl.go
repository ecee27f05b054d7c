// Package crawl provides the frontier scheduler that drives a crawl:
// a bounded pool of workers fetches pages in parallel while a single
// coordinator loop owns the visited set, the page budget, and the
// growing result set. Workers never touch shared state; they only hand
// completed outcomes back to the coordinator.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/mailsift/mailsift"
)

// Crawler coordinates one crawl at a time. Fetcher and Parser are
// required; Seeder is optional and, when set, contributes sitemap URLs
// to the initial frontier.
type Crawler struct {
	Fetcher mailsift.Fetcher
	Parser  mailsift.PageParser
	Seeder  mailsift.SitemapSeeder
}

// Result summarizes a finished crawl.
type Result struct {
	Records      []mailsift.EmailRecord
	Pages        []*mailsift.PageScan
	PagesScanned int
	Duration     time.Duration
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressEmail
	ProgressPage
	ProgressFinished
)

// ProgressEvent reports incremental crawl progress. A ProgressEmail
// event carries each newly admitted record the moment it is found; a
// ProgressPage event follows every completed fetch, success or
// failure.
type ProgressEvent struct {
	Type         ProgressType
	PagesScanned int
	EmailsFound  int
	Elapsed      time.Duration
	URL          string
	Record       *mailsift.EmailRecord
}

// ProgressFunc is a callback for reporting crawl progress. It is
// invoked from the coordinator goroutine only, after each processed
// completion.
type ProgressFunc func(event ProgressEvent)

// fetchOutcome is what a worker hands back to the coordinator. A
// failed page carries err only: no records, no links, no retry, and
// the URL stays visited permanently.
type fetchOutcome struct {
	url    string
	page   *mailsift.Page
	emails []string
	err    error
}

// Run crawls from cfg.StartURL until the page budget is exhausted or
// the frontier drains, streaming records and progress through the
// optional callback as they happen.
func (c *Crawler) Run(ctx context.Context, cfg mailsift.CrawlConfig, progress ProgressFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, err := url.Parse(cfg.StartURL)
	if err != nil || start.Host == "" {
		return nil, mailsift.Errorf(mailsift.EINVALID, "invalid start URL %q", cfg.StartURL)
	}
	baseHost := start.Host
	started := time.Now()

	frontier := NewFrontier()
	frontier.Push(cfg.StartURL)
	if c.Seeder != nil {
		c.seedFromSitemap(ctx, cfg, frontier, baseHost)
	}

	// Cancelable sub-context so in-flight fetches can be abandoned
	// once the budget is hit. Cancellation is best-effort: an
	// uninterruptible fetch may complete anyway and its result is
	// discarded, not merged.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCh := make(chan string, cfg.Workers)
	resultCh := make(chan fetchOutcome)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for jobURL := range workCh {
				outcome := c.processURL(ctx, jobURL)
				select {
				case resultCh <- outcome:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Close the result channel once all workers are done.
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := mailsift.NewResultSet(cfg.DedupEmails)
	var pageScans []*mailsift.PageScan
	pagesScanned := 0
	inflight := 0

	emit := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}

	emit(ProgressEvent{Type: ProgressStarted, URL: cfg.StartURL})

	// handleOutcome merges one completed job back into crawl state. It
	// runs on the coordinator goroutine only, which is the sole writer
	// of the frontier, the counters, and the result set.
	handleOutcome := func(outcome fetchOutcome) {
		pagesScanned++

		if outcome.err == nil {
			records := make([]mailsift.EmailRecord, 0, len(outcome.emails))
			for _, email := range outcome.emails {
				records = append(records, mailsift.EmailRecord{
					Email:     email,
					PageURL:   outcome.page.FinalURL,
					PageTitle: outcome.page.Title,
				})
			}
			added := results.Add(records)
			for i := range added {
				emit(ProgressEvent{
					Type:         ProgressEmail,
					PagesScanned: pagesScanned,
					EmailsFound:  results.Len(),
					Elapsed:      time.Since(started),
					Record:       &added[i],
				})
			}

			pageScans = append(pageScans, &mailsift.PageScan{
				URL:         outcome.page.FinalURL,
				Title:       outcome.page.Title,
				ContentHash: hashText(outcome.page.Text),
				EmailCount:  len(outcome.emails),
				FetchedAt:   time.Now().UTC(),
			})

			// Admit new links only while the post-scan budget still
			// has room. The visited-size brake is approximate: a
			// submitted job that later fails still consumed a slot, so
			// a few extra jobs may briefly be in flight past the
			// budget.
			if cfg.MaxPages-pagesScanned-inflight > 0 {
				for _, link := range outcome.page.Links {
					if !mailsift.IsInternalLink(link, baseHost) {
						continue
					}
					if frontier.Push(link) && frontier.Visited() >= cfg.MaxPages {
						break
					}
				}
			}
		}

		emit(ProgressEvent{
			Type:         ProgressPage,
			PagesScanned: pagesScanned,
			EmailsFound:  results.Len(),
			Elapsed:      time.Since(started),
			URL:          outcome.url,
		})
	}

	var next string
	hasNext := false
	if u, ok := frontier.Pop(); ok {
		next, hasNext = u, true
	}

coordinator:
	for {
		if !hasNext && inflight == 0 {
			break // frontier exhausted
		}
		if ctx.Err() != nil {
			break
		}

		if hasNext {
			select {
			case <-ctx.Done():
				break coordinator
			case workCh <- next:
				inflight++
				hasNext = false
			case outcome := <-resultCh:
				inflight--
				handleOutcome(outcome)
				if pagesScanned >= cfg.MaxPages {
					break coordinator
				}
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinator
			case outcome, ok := <-resultCh:
				if !ok {
					break coordinator
				}
				inflight--
				handleOutcome(outcome)
				if pagesScanned >= cfg.MaxPages {
					break coordinator
				}
			}
		}

		if !hasNext {
			if u, ok := frontier.Pop(); ok {
				next, hasNext = u, true
			}
		}
	}

	// Budget hit, canceled, or frontier drained: abandon remaining
	// work. Jobs that race cancellation to completion are received
	// here and discarded, never merged.
	cancel()
	close(workCh)
	for range resultCh {
	}

	duration := time.Since(started)
	emit(ProgressEvent{
		Type:         ProgressFinished,
		PagesScanned: pagesScanned,
		EmailsFound:  results.Len(),
		Elapsed:      duration,
	})

	return &Result{
		Records:      results.Records(),
		Pages:        pageScans,
		PagesScanned: pagesScanned,
		Duration:     duration,
	}, nil
}

// processURL runs one fetch job: GET, parse, extract. Any failure at
// any stage collapses the page to an outcome with no records and no
// links.
func (c *Crawler) processURL(ctx context.Context, rawURL string) fetchOutcome {
	outcome := fetchOutcome{url: rawURL}

	html, finalURL, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		outcome.err = err
		return outcome
	}

	page, err := c.Parser.Parse(html, finalURL)
	if err != nil {
		outcome.err = err
		return outcome
	}

	outcome.page = page
	outcome.emails = mailsift.ExtractEmails(page.Text)
	return outcome
}

// seedFromSitemap pushes sitemap-listed URLs onto the initial
// frontier, subject to the same admission rules as discovered links.
// Seeding is best-effort; the start URL alone suffices when the site
// has no sitemap.
func (c *Crawler) seedFromSitemap(ctx context.Context, cfg mailsift.CrawlConfig, frontier *Frontier, baseHost string) {
	urls, err := c.Seeder.Discover(ctx, cfg.StartURL)
	if err != nil {
		return
	}
	for _, u := range urls {
		if !mailsift.IsInternalLink(u, baseHost) {
			continue
		}
		if frontier.Push(u) && frontier.Visited() >= cfg.MaxPages {
			break
		}
	}
}

// hashText computes an xxhash hex digest of a page's visible text.
func hashText(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
