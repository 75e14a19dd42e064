package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RankScope/internal/model"
)

func rec(label string, price, rank float64) model.Record {
	return model.Record{Label: label, Price: price, Rank: rank}
}

func samplePoints(t *testing.T, want, got []model.AggregatedPoint) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].BucketStart, got[i].BucketStart, "bucket %d start", i)
		assert.Equal(t, want[i].Label, got[i].Label, "bucket %d label", i)
		assert.Equal(t, want[i].Count, got[i].Count, "bucket %d count", i)
		if math.IsNaN(want[i].MeanRank) {
			assert.True(t, math.IsNaN(got[i].MeanRank), "bucket %d: expected undefined mean, got %v", i, got[i].MeanRank)
		} else {
			assert.InDelta(t, want[i].MeanRank, got[i].MeanRank, 1e-9, "bucket %d mean", i)
		}
	}
}

func TestBuildBuckets(t *testing.T) {
	tests := []struct {
		name       string
		max, width float64
		start      float64
		want       []float64
	}{
		{"from zero", 94, 10, 0, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"max on grid line", 90, 10, 0, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"bar chart grid", 95, 5, 60, []float64{60, 65, 70, 75, 80, 85, 90, 95}},
		{"max below start", 3, 5, 60, []float64{60}},
		{"empty data", 0, 10, 0, []float64{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := BuildBuckets(tt.max, tt.width, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Starts)
			assert.Equal(t, tt.width, b.Width)
		})
	}
}

func TestBuildBuckets_InvalidArgument(t *testing.T) {
	for _, width := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := BuildBuckets(100, width, 0)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "width %v: got %v", width, err)
	}
	_, err := BuildBuckets(math.NaN(), 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = BuildBuckets(1e12, 1e-6, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildBuckets_AscendingUniformCovering(t *testing.T) {
	for _, tc := range []struct{ max, width, start float64 }{
		{94.3, 10, 0}, {1.0, 0.1, 0}, {333, 7, 12}, {0.7, 0.1, 0.2}, {100, 3, 0},
	} {
		b, err := BuildBuckets(tc.max, tc.width, tc.start)
		require.NoError(t, err)
		require.NotEmpty(t, b.Starts)
		assert.Equal(t, tc.start, b.Starts[0])
		for i := 1; i < b.Len(); i++ {
			assert.Greater(t, b.Starts[i], b.Starts[i-1])
			assert.InDelta(t, tc.width, b.Starts[i]-b.Starts[i-1], 1e-9)
			assert.Equal(t, b.Starts[i], b.Upper(i-1), "buckets %d and %d must share an edge", i-1, i)
		}
		last := b.Len() - 1
		assert.LessOrEqual(t, b.Starts[last], tc.max)
		assert.Greater(t, b.Upper(last), tc.max, "grid %v must cover max %v", b.Starts, tc.max)
	}
}

func TestBucketsIndex_Partition(t *testing.T) {
	b, err := BuildBuckets(1.0, 0.1, 0)
	require.NoError(t, err)
	for _, p := range []float64{0, 0.1, 0.2, 0.3, 0.30000000000000004, 0.7, 0.9999, 1.0} {
		i, ok := b.Index(p)
		require.True(t, ok, "price %v", p)
		assert.GreaterOrEqual(t, p, b.Starts[i])
		assert.Less(t, p, b.Upper(i))
	}
	_, ok := b.Index(-0.01)
	assert.False(t, ok)
	_, ok = b.Index(5)
	assert.False(t, ok)
	_, ok = b.Index(math.NaN())
	assert.False(t, ok)
}

func TestAggregate_TwoBuckets(t *testing.T) {
	records := []model.Record{rec("A", 61, 2), rec("A", 63, 4), rec("A", 92, 10)}
	b, err := BuildBuckets(92, 5, 60)
	require.NoError(t, err)

	points := Aggregate(records, b, "A")
	require.Len(t, points, 7)
	assert.Equal(t, 60.0, points[0].BucketStart)
	assert.Equal(t, 3.0, points[0].MeanRank)
	assert.Equal(t, 2, points[0].Count)
	for _, p := range points[1:6] {
		assert.False(t, p.Defined(), "bucket %v should be undefined", p.BucketStart)
	}
	assert.Equal(t, 90.0, points[6].BucketStart)
	assert.Equal(t, 10.0, points[6].MeanRank)

	defined := FilterDefined(points)
	require.Len(t, defined, 2)
	assert.Equal(t, 60.0, defined[0].BucketStart)
	assert.Equal(t, 90.0, defined[1].BucketStart)
}

func TestAggregate_EmptyRecords(t *testing.T) {
	b, err := BuildBuckets(50, 10, 0)
	require.NoError(t, err)
	points := Aggregate(nil, b, AnyLabel)
	require.Len(t, points, b.Len())
	for _, p := range points {
		assert.False(t, p.Defined())
		assert.True(t, math.IsNaN(p.MeanRank))
	}
	assert.Empty(t, FilterDefined(points))
}

func TestAggregate_LabelFilterAndMalformed(t *testing.T) {
	records := []model.Record{
		rec("A", 12, 4),
		rec("B", 14, 100),
		rec("A", 15, math.NaN()), // absent rank: skipped, not zero
		rec("A", math.NaN(), 1),  // absent price: in no bucket
		rec("A", 18, 2),
	}
	b, err := BuildBuckets(20, 10, 0)
	require.NoError(t, err)

	points := Aggregate(records, b, "A")
	require.Len(t, points, 3)
	assert.False(t, points[0].Defined())
	assert.Equal(t, 3.0, points[1].MeanRank)
	assert.Equal(t, 2, points[1].Count)

	all := Aggregate(records, b, AnyLabel)
	assert.InDelta(t, 106.0/3, all[1].MeanRank, 1e-9)
	assert.Equal(t, AnyLabel, all[1].Label)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	records := []model.Record{rec("A", 3, 1), rec("B", 1, 2)}
	before := append([]model.Record(nil), records...)
	b, err := BuildBuckets(5, 1, 0)
	require.NoError(t, err)
	Aggregate(records, b, AnyLabel)
	assert.Equal(t, before, records)
}

func TestAggregate_WeightedMeanRoundTrip(t *testing.T) {
	records := []model.Record{
		rec("A", 1, 5), rec("A", 3, 1), rec("A", 11, 2), rec("A", 19, 4),
		rec("A", 27, 3), rec("B", 27, 50), rec("A", 44, 7), rec("A", 45, 1),
	}
	b, err := BuildBuckets(45, 10, 0)
	require.NoError(t, err)

	var weighted float64
	var n int
	for _, p := range FilterDefined(Aggregate(records, b, "A")) {
		weighted += p.MeanRank * float64(p.Count)
		n += p.Count
	}
	require.Equal(t, 7, n)
	assert.InDelta(t, (5+1+2+4+3+7+1)/7.0, weighted/float64(n), 1e-9)
}

func TestAggregate_Deterministic(t *testing.T) {
	records := []model.Record{rec("A", 5, 1), rec("B", 6, 2), rec("A", 25, 3)}
	b, err := BuildBuckets(25, 10, 0)
	require.NoError(t, err)
	samplePoints(t, Aggregate(records, b, "A"), Aggregate(records, b, "A"))
}

func TestReaggregate_SnapsToGrid(t *testing.T) {
	records := []model.Record{rec("A", 61, 2), rec("A", 63, 4), rec("A", 75, 6), rec("A", 93, 8)}
	points, err := Reaggregate(records, "A", 62, 94, 10)
	require.NoError(t, err)

	starts := make([]float64, len(points))
	for i, p := range points {
		starts[i] = p.BucketStart
	}
	assert.Equal(t, []float64{60, 70, 80, 90}, starts)

	// 61 lies outside [62, 94] and is left out of the edge bucket.
	assert.Equal(t, 4.0, points[0].MeanRank)
	assert.Equal(t, 1, points[0].Count)
	assert.Equal(t, 6.0, points[1].MeanRank)
	assert.False(t, points[2].Defined())
	assert.Equal(t, 8.0, points[3].MeanRank)
}

func TestReaggregate_UpperBoundOnGridLine(t *testing.T) {
	records := []model.Record{rec("A", 90, 3), rec("A", 95, 9)}
	points, err := Reaggregate(records, "A", 70, 90, 10)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 90.0, points[2].BucketStart)
	assert.Equal(t, 3.0, points[2].MeanRank)
	assert.Equal(t, 1, points[2].Count)
}

func TestReaggregate_FullRangeMatchesAggregate(t *testing.T) {
	records := []model.Record{
		rec("A", 0, 2), rec("A", 9.99, 4), rec("A", 35, 1), rec("B", 40, 3), rec("A", 94, 5),
	}
	maxPrice, _ := Summarize(records)
	b, err := BuildBuckets(maxPrice, 10, 0)
	require.NoError(t, err)

	full := Aggregate(records, b, "A")
	re, err := Reaggregate(records, "A", 0, maxPrice, 10)
	require.NoError(t, err)
	samplePoints(t, full, re)
}

func TestReaggregate_SwappedBoundsAndErrors(t *testing.T) {
	records := []model.Record{rec("A", 15, 2)}
	a, err := Reaggregate(records, "A", 30, 10, 10)
	require.NoError(t, err)
	b, err := Reaggregate(records, "A", 10, 30, 10)
	require.NoError(t, err)
	samplePoints(t, b, a)

	_, err = Reaggregate(records, "A", 0, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Reaggregate(records, "A", math.NaN(), 10, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSnap(t *testing.T) {
	assert.Equal(t, 60.0, SnapDown(62, 10))
	assert.Equal(t, 100.0, SnapUp(94, 10))
	assert.Equal(t, 90.0, SnapUp(90, 10))
	assert.Equal(t, 0.0, SnapDown(3, 5))
}
