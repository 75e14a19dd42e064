package calculator

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"RankScope/internal/model"
)

// AnyLabel selects records of every label.
const AnyLabel = ""

// Aggregate computes the mean rank of the records in each bucket, restricted
// to label unless it is AnyLabel. It returns one point per bucket in bucket
// order; buckets without a usable rank give an undefined point.
func Aggregate(records []model.Record, b Buckets, label string) []model.AggregatedPoint {
	return aggregate(records, b, label, nil)
}

// FilterDefined drops undefined points, keeping order. Lines are drawn from
// its output so gaps stay gaps instead of being interpolated through.
func FilterDefined(points []model.AggregatedPoint) []model.AggregatedPoint {
	out := make([]model.AggregatedPoint, 0, len(points))
	for _, p := range points {
		if p.Defined() {
			out = append(out, p)
		}
	}
	return out
}

// Reaggregate aggregates label over the records priced within
// [lowerBound, upperBound]. The bucket grid starts at lowerBound snapped down
// to a multiple of width and runs through the bucket holding upperBound, so
// buckets stay aligned regardless of where the selection falls.
func Reaggregate(records []model.Record, label string, lowerBound, upperBound, width float64) ([]model.AggregatedPoint, error) {
	if !finite(width) || width <= 0 {
		return nil, fmt.Errorf("%w: bucket width must be positive, got %v", ErrInvalidArgument, width)
	}
	if upperBound < lowerBound {
		lowerBound, upperBound = upperBound, lowerBound
	}
	b, err := BuildBuckets(upperBound, width, SnapDown(lowerBound, width))
	if err != nil {
		return nil, fmt.Errorf("reaggregate: %w", err)
	}
	inRange := func(price float64) bool {
		return price >= lowerBound && price <= upperBound
	}
	return aggregate(records, b, label, inRange), nil
}

func aggregate(records []model.Record, b Buckets, label string, keep func(price float64) bool) []model.AggregatedPoint {
	ranks := make([][]float64, b.Len())
	for _, r := range records {
		if label != AnyLabel && r.Label != label {
			continue
		}
		if !r.HasPrice() || !r.HasRank() {
			continue
		}
		if keep != nil && !keep(r.Price) {
			continue
		}
		i, ok := b.Index(r.Price)
		if !ok {
			continue
		}
		ranks[i] = append(ranks[i], r.Rank)
	}

	points := make([]model.AggregatedPoint, b.Len())
	for i, start := range b.Starts {
		p := model.AggregatedPoint{BucketStart: start, Label: label, MeanRank: math.NaN()}
		if len(ranks[i]) > 0 {
			p.MeanRank = stats.Mean(ranks[i])
			p.Count = len(ranks[i])
		}
		points[i] = p
	}
	return points
}
