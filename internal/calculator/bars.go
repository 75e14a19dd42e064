package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"RankScope/internal/model"
)

// PriceBars computes the mean rank of every label together for the buckets
// start, start+width, ... up to end. Empty buckets are left out.
func PriceBars(records []model.Record, start, end, width float64) ([]model.Bar, error) {
	b, err := BuildBuckets(end, width, start)
	if err != nil {
		return nil, fmt.Errorf("price bars: %w", err)
	}
	points := FilterDefined(Aggregate(records, b, AnyLabel))
	bars := make([]model.Bar, len(points))
	for i, p := range points {
		bars[i] = model.Bar{
			Label:       RangeLabel(p.BucketStart, width),
			BucketStart: p.BucketStart,
			MeanRank:    p.MeanRank,
		}
	}
	return bars, nil
}

// RangeLabel formats a bucket as an inclusive whole-dollar range, e.g.
// "$60 - $64" for the bucket [60, 65).
func RangeLabel(start, width float64) string {
	lo := decimal.NewFromFloat(start)
	hi := lo.Add(decimal.NewFromFloat(width)).Sub(decimal.NewFromInt(1))
	if hi.LessThan(lo) {
		hi = lo
	}
	return fmt.Sprintf("$%s - $%s", lo.String(), hi.String())
}
