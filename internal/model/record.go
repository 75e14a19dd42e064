package model

import "math"

// Record is one product row of the dataset. Price or Rank is NaN when the
// source cell was missing or malformed.
type Record struct {
	Label string
	Price float64
	Rank  float64
}

// HasPrice reports whether the record can be placed in a price bucket.
func (r Record) HasPrice() bool {
	return !math.IsNaN(r.Price) && !math.IsInf(r.Price, 0) && r.Price >= 0
}

// HasRank reports whether the record contributes to a mean rank.
func (r Record) HasRank() bool {
	return !math.IsNaN(r.Rank) && !math.IsInf(r.Rank, 0) && r.Rank >= 0
}

// Dataset is the full record set, loaded once and never mutated.
type Dataset struct {
	Records  []Record
	Labels   []string // distinct labels in first-appearance order
	MaxPrice float64
	MaxRank  float64
	Skipped  int // rows dropped while parsing (no label)
}
