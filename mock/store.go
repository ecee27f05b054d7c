package mock

import (
	"context"

	"github.com/mailsift/mailsift"
)

var _ mailsift.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of mailsift.CrawlService.
type CrawlService struct {
	CreateCrawlFn        func(ctx context.Context, crawl *mailsift.Crawl, pages []*mailsift.PageScan, records []mailsift.EmailRecord) error
	FindCrawlByIDFn      func(ctx context.Context, id string) (*mailsift.Crawl, error)
	FindCrawlsFn         func(ctx context.Context) ([]*mailsift.Crawl, error)
	FindRecordsByCrawlFn func(ctx context.Context, crawlID string) ([]mailsift.EmailRecord, error)
}

func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *mailsift.Crawl, pages []*mailsift.PageScan, records []mailsift.EmailRecord) error {
	return s.CreateCrawlFn(ctx, crawl, pages, records)
}

func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*mailsift.Crawl, error) {
	return s.FindCrawlByIDFn(ctx, id)
}

func (s *CrawlService) FindCrawls(ctx context.Context) ([]*mailsift.Crawl, error) {
	return s.FindCrawlsFn(ctx)
}

func (s *CrawlService) FindRecordsByCrawl(ctx context.Context, crawlID string) ([]mailsift.EmailRecord, error) {
	return s.FindRecordsByCrawlFn(ctx, crawlID)
}
