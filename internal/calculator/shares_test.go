package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RankScope/internal/model"
)

func TestLabelShares(t *testing.T) {
	records := []model.Record{
		rec("Moisturizer", 10, 4),
		rec("Cleanser", 20, 3),
		rec("Moisturizer", math.NaN(), math.NaN()),
		rec("Face Mask", 30, 5),
	}
	shares := LabelShares(records)
	require.Len(t, shares, 3)
	assert.Equal(t, "Moisturizer", shares[0].Label)
	assert.Equal(t, 2, shares[0].Count)
	assert.InDelta(t, 50.0, shares[0].Percent, 1e-9)
	assert.Equal(t, "Cleanser", shares[1].Label)
	assert.Equal(t, "Face Mask", shares[2].Label)

	var total float64
	for _, s := range shares {
		total += s.Percent
	}
	assert.InDelta(t, 100.0, total, 1e-9)

	assert.Empty(t, LabelShares(nil))
}

func TestSummarize(t *testing.T) {
	maxPrice, maxRank := Summarize([]model.Record{
		rec("A", 12, 4.5), rec("A", math.NaN(), 9), rec("B", 80, math.NaN()), rec("B", -3, 2),
	})
	assert.Equal(t, 80.0, maxPrice)
	assert.Equal(t, 9.0, maxRank)

	maxPrice, maxRank = Summarize(nil)
	assert.Zero(t, maxPrice)
	assert.Zero(t, maxRank)
}

func TestPriceBars(t *testing.T) {
	records := []model.Record{
		rec("A", 59.99, 1), // below the first bucket
		rec("A", 60, 2),
		rec("B", 64.5, 4),
		rec("A", 72, 5),
		rec("B", 97, 4), // inside [95, 100)
		rec("B", 101, 4),
	}
	bars, err := PriceBars(records, 60, 95, 5)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "$60 - $64", bars[0].Label)
	assert.Equal(t, 3.0, bars[0].MeanRank)
	assert.Equal(t, "$70 - $74", bars[1].Label)
	assert.Equal(t, "$95 - $99", bars[2].Label)

	_, err = PriceBars(records, 60, 95, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRangeLabel(t *testing.T) {
	assert.Equal(t, "$60 - $64", RangeLabel(60, 5))
	assert.Equal(t, "$0 - $9", RangeLabel(0, 10))
	assert.Equal(t, "$12.5 - $12.5", RangeLabel(12.5, 0.5))
}
