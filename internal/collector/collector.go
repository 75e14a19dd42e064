package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"RankScope/internal/calculator"
	"RankScope/internal/logger"
	"RankScope/internal/model"
)

// MockFetcher returns a fixed CSV body for development and testing.
type MockFetcher struct {
	CSV string
	Err error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(m.CSV)), nil
}

// Collector orchestrates dataset fetching and parsing.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches the CSV once and builds the immutable dataset.
func (c *Collector) Collect(ctx context.Context) (*model.Dataset, error) {
	body, err := c.Fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", c.Fetcher.Name(), err)
	}
	defer body.Close()

	records, st, err := ParseCSV(body)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("dataset has no usable rows")
	}

	if st.NoLabel > 0 {
		logger.Warn("%d row(s) without a label skipped", st.NoLabel)
	}
	if st.BadPrice > 0 {
		logger.Warn("%d row(s) with a missing or malformed price, left out of every bucket", st.BadPrice)
	}
	if st.BadRank > 0 {
		logger.Warn("%d row(s) with a missing or malformed rank, left out of every mean", st.BadRank)
	}

	ds := &model.Dataset{
		Records: records,
		Labels:  calculator.Labels(records),
		Skipped: st.NoLabel,
	}
	ds.MaxPrice, ds.MaxRank = calculator.Summarize(records)

	logger.Info("loaded %d records (%d labels, max price %.2f, max rank %.2f) from %s",
		len(records), len(ds.Labels), ds.MaxPrice, ds.MaxRank, c.Fetcher.Name())
	return ds, nil
}
