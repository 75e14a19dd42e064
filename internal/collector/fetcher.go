package collector

import (
	"context"
	"io"
	"strings"
	"time"
)

// Fetcher defines the interface for fetching the raw CSV dataset.
type Fetcher interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// NewFetcher returns an HTTPFetcher for http(s) URLs and a FileFetcher otherwise.
func NewFetcher(source, proxyURL string, timeout time.Duration) Fetcher {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPFetcher(source, proxyURL, timeout)
	}
	return &FileFetcher{Path: source}
}
