package calculator

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"RankScope/internal/model"
)

// Labels returns the distinct labels in first-appearance order.
func Labels(records []model.Record) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, r := range records {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// LabelShares counts records per label. Every record counts, including those
// whose price or rank is absent.
func LabelShares(records []model.Record) []model.LabelShare {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Label]++
	}
	labels := Labels(records)
	shares := make([]model.LabelShare, len(labels))
	for i, l := range labels {
		shares[i] = model.LabelShare{
			Label:   l,
			Count:   counts[l],
			Percent: float64(counts[l]) / float64(len(records)) * 100,
		}
	}
	return shares
}

// Summarize returns the largest present price and rank, or zeros when there
// are none.
func Summarize(records []model.Record) (maxPrice, maxRank float64) {
	var prices, ranks []float64
	for _, r := range records {
		if r.HasPrice() {
			prices = append(prices, r.Price)
		}
		if r.HasRank() {
			ranks = append(ranks, r.Rank)
		}
	}
	if len(prices) > 0 {
		_, maxPrice = stats.Bounds(prices)
	}
	if len(ranks) > 0 {
		_, maxRank = stats.Bounds(ranks)
	}
	if math.IsNaN(maxPrice) {
		maxPrice = 0
	}
	if math.IsNaN(maxRank) {
		maxRank = 0
	}
	return maxPrice, maxRank
}
