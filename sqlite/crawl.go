package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mailsift/mailsift"
)

// Ensure service implements interface.
var _ mailsift.CrawlService = (*CrawlService)(nil)

// CrawlService represents a service for managing crawl history
// backed by SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService returns a new instance of CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl stores a finished crawl together with its page scans and
// email records. The crawl, its pages, and its records are written in
// a single transaction; IDs are assigned here.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *mailsift.Crawl, pages []*mailsift.PageScan, records []mailsift.EmailRecord) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	crawl.ID = uuid.New().String()
	if crawl.StartedAt.IsZero() {
		crawl.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO crawls (id, start_url, pages_scanned, emails_found, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		crawl.ID,
		crawl.StartURL,
		crawl.PagesScanned,
		crawl.EmailsFound,
		crawl.Duration.Milliseconds(),
		crawl.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert crawl: %w", err)
	}

	for _, page := range pages {
		page.ID = uuid.New().String()
		page.CrawlID = crawl.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (id, crawl_id, url, title, content_hash, email_count, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			page.ID,
			page.CrawlID,
			page.URL,
			page.Title,
			page.ContentHash,
			page.EmailCount,
			page.FetchedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert page: %w", err)
		}
	}

	// Position preserves discovery order across reads.
	for i, record := range records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (id, crawl_id, position, email, page_url, page_title)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			uuid.New().String(),
			crawl.ID,
			i,
			record.Email,
			record.PageURL,
			record.PageTitle,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindCrawlByID retrieves a crawl by ID. Returns ENOTFOUND if the
// crawl does not exist.
func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*mailsift.Crawl, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, start_url, pages_scanned, emails_found, duration_ms, started_at
		FROM crawls
		WHERE id = ?
	`, id)

	crawl, err := scanCrawl(row)
	if err == sql.ErrNoRows {
		return nil, mailsift.Errorf(mailsift.ENOTFOUND, "crawl not found: %s", id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to find crawl: %w", err)
	}
	return crawl, nil
}

// FindCrawls lists stored crawls, most recent first.
func (s *CrawlService) FindCrawls(ctx context.Context) ([]*mailsift.Crawl, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_url, pages_scanned, emails_found, duration_ms, started_at
		FROM crawls
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawls: %w", err)
	}
	defer rows.Close()

	var crawls []*mailsift.Crawl
	for rows.Next() {
		crawl, err := scanCrawl(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crawl: %w", err)
		}
		crawls = append(crawls, crawl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crawls: %w", err)
	}
	return crawls, nil
}

// FindRecordsByCrawl returns a crawl's email records in discovery
// order. Returns ENOTFOUND if the crawl does not exist.
func (s *CrawlService) FindRecordsByCrawl(ctx context.Context, crawlID string) ([]mailsift.EmailRecord, error) {
	if _, err := s.FindCrawlByID(ctx, crawlID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT email, page_url, page_title
		FROM records
		WHERE crawl_id = ?
		ORDER BY position ASC
	`, crawlID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []mailsift.EmailRecord
	for rows.Next() {
		var record mailsift.EmailRecord
		if err := rows.Scan(&record.Email, &record.PageURL, &record.PageTitle); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// FindPagesByCrawl returns a crawl's page scans in fetch order.
// Returns ENOTFOUND if the crawl does not exist.
func (s *CrawlService) FindPagesByCrawl(ctx context.Context, crawlID string) ([]*mailsift.PageScan, error) {
	if _, err := s.FindCrawlByID(ctx, crawlID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, crawl_id, url, title, content_hash, email_count, fetched_at
		FROM pages
		WHERE crawl_id = ?
		ORDER BY fetched_at ASC
	`, crawlID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []*mailsift.PageScan
	for rows.Next() {
		var page mailsift.PageScan
		var fetchedAt string
		err := rows.Scan(&page.ID, &page.CrawlID, &page.URL, &page.Title, &page.ContentHash, &page.EmailCount, &fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		page.FetchedAt, err = parseTime(fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
		}
		pages = append(pages, &page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}
	return pages, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning code.
type scanner interface {
	Scan(dest ...any) error
}

func scanCrawl(s scanner) (*mailsift.Crawl, error) {
	var crawl mailsift.Crawl
	var durationMS int64
	var startedAt string

	err := s.Scan(&crawl.ID, &crawl.StartURL, &crawl.PagesScanned, &crawl.EmailsFound, &durationMS, &startedAt)
	if err != nil {
		return nil, err
	}

	crawl.Duration = time.Duration(durationMS) * time.Millisecond
	crawl.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return nil, err
	}
	return &crawl, nil
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
