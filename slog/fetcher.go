// Package slog provides logging decorators for mailsift services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mailsift/mailsift"
)

// Ensure LoggingFetcher implements mailsift.Fetcher.
var _ mailsift.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   mailsift.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mailsift.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, string, error) {
	begin := time.Now()
	html, finalURL, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Info("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return "", "", err
	}
	f.logger.Info("fetch",
		"url", url,
		"final_url", finalURL,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, finalURL, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
