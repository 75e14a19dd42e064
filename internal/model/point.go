package model

import "math"

// AggregatedPoint is the mean rank of one price bucket, optionally restricted
// to one label. A point with Count == 0 is undefined and MeanRank is NaN.
type AggregatedPoint struct {
	BucketStart float64
	Label       string
	MeanRank    float64
	Count       int // records with a usable rank in the bucket
}

// Defined reports whether any record contributed to the point.
func (p AggregatedPoint) Defined() bool {
	return p.Count > 0 && !math.IsNaN(p.MeanRank)
}

// Series is one drawable line of the multi-line plot.
type Series struct {
	Label  string
	Color  string // hex, without '#'
	Points []AggregatedPoint
}

// LabelShare is one slice of the label pie.
type LabelShare struct {
	Label   string
	Count   int
	Percent float64 // 0 ~ 100
}

// Bar is one bucket of the price bar chart.
type Bar struct {
	Label       string // "$60 - $64"
	BucketStart float64
	MeanRank    float64
}

// BarFrame holds the bar heights at one instant of the bar animation.
type BarFrame struct {
	Bars    []Bar
	Heights []float64 // same length as Bars, 0 ~ Bars[i].MeanRank
	Cycle   int
}

// Selection is the visible price range of the line plot.
type Selection struct {
	ID    string
	Lower float64 // raw bounds as requested
	Upper float64
	Start float64 // Lower snapped down and Upper snapped up to the bucket grid
	End   float64
	Full  bool // true when no narrowing is in effect
}

// Palette is the fixed six-color scheme shared by the line and pie charts;
// label i takes Palette[i%len(Palette)].
var Palette = []string{"e41a1c", "377eb8", "4daf4a", "984ea3", "ff7f00", "8c510a"}

// ColorFor returns the palette color of the i-th label.
func ColorFor(i int) string {
	return Palette[i%len(Palette)]
}
