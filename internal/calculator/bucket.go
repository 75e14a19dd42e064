package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for non-positive widths and non-finite bounds.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxBuckets bounds the size of a bucket grid.
const MaxBuckets = 1 << 20

// Buckets is a grid of fixed-width, half-open price intervals.
// Bucket i is [Starts[i], Starts[i]+Width).
type Buckets struct {
	Starts []float64
	Width  float64
}

// Len returns the number of buckets.
func (b Buckets) Len() int { return len(b.Starts) }

// Upper returns the exclusive upper edge of bucket i. It is computed from the
// grid origin so that Upper(i) == Starts[i+1] exactly.
func (b Buckets) Upper(i int) float64 {
	return b.Starts[0] + float64(i+1)*b.Width
}

// Index returns the bucket containing price.
func (b Buckets) Index(price float64) (int, bool) {
	n := len(b.Starts)
	if n == 0 || math.IsNaN(price) || price < b.Starts[0] || price >= b.Upper(n-1) {
		return 0, false
	}
	i := int(math.Floor((price - b.Starts[0]) / b.Width))
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	// Division can land one bucket off near an edge.
	for i > 0 && price < b.Starts[i] {
		i--
	}
	for i < n-1 && price >= b.Upper(i) {
		i++
	}
	return i, true
}

// BuildBuckets returns bucket starts from start in steps of width, up to the
// last start <= maxPrice, so the grid covers [start, maxPrice]. A maxPrice
// below start yields the single bucket at start.
func BuildBuckets(maxPrice, width, start float64) (Buckets, error) {
	if !finite(width) || width <= 0 {
		return Buckets{}, fmt.Errorf("%w: bucket width must be positive, got %v", ErrInvalidArgument, width)
	}
	if !finite(maxPrice) || !finite(start) {
		return Buckets{}, fmt.Errorf("%w: bounds must be finite, got start=%v max=%v", ErrInvalidArgument, start, maxPrice)
	}

	n := 1
	if maxPrice > start {
		span := (maxPrice - start) / width
		if span >= MaxBuckets {
			return Buckets{}, fmt.Errorf("%w: %v..%v by %v needs more than %d buckets", ErrInvalidArgument, start, maxPrice, width, MaxBuckets)
		}
		n = int(math.Floor(span)) + 1
		for n > 1 && start+float64(n-1)*width > maxPrice {
			n--
		}
		for start+float64(n)*width <= maxPrice {
			n++
		}
	}

	starts := make([]float64, n)
	for i := range starts {
		starts[i] = start + float64(i)*width
	}
	return Buckets{Starts: starts, Width: width}, nil
}

// SnapDown returns the grid line at or below x.
func SnapDown(x, width float64) float64 {
	return math.Floor(x/width) * width
}

// SnapUp returns the grid line at or above x.
func SnapUp(x, width float64) float64 {
	return math.Ceil(x/width) * width
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
