package mock

import (
	"context"

	"github.com/mailsift/mailsift"
)

var _ mailsift.SitemapSeeder = (*SitemapSeeder)(nil)

// SitemapSeeder is a mock implementation of mailsift.SitemapSeeder.
type SitemapSeeder struct {
	DiscoverFn func(ctx context.Context, startURL string) ([]string, error)
}

func (s *SitemapSeeder) Discover(ctx context.Context, startURL string) ([]string, error) {
	return s.DiscoverFn(ctx, startURL)
}
