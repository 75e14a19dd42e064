// Package report formats aggregation results as plain text for the console.
package report

import (
	"fmt"
	"strings"

	"RankScope/internal/model"
)

// FormatSelection describes the visible price range.
func FormatSelection(sel model.Selection) string {
	if sel.Full {
		return fmt.Sprintf("📐 Full range: $%.2f - $%.2f\n", sel.Lower, sel.Upper)
	}
	return fmt.Sprintf("📐 Range: $%.2f - $%.2f (grid $%.2f - $%.2f)\n", sel.Lower, sel.Upper, sel.Start, sel.End)
}

// FormatSeries lists the defined points of every series under the selection.
func FormatSeries(sel model.Selection, series []model.Series) string {
	var b strings.Builder
	b.WriteString(FormatSelection(sel))
	for _, s := range series {
		b.WriteString(fmt.Sprintf("\n%s (#%s)\n", s.Label, s.Color))
		if len(s.Points) == 0 {
			b.WriteString("  no data in range\n")
			continue
		}
		for _, p := range s.Points {
			b.WriteString(fmt.Sprintf("  $%-8g mean rank %.2f (n=%d)\n", p.BucketStart, p.MeanRank, p.Count))
		}
	}
	return b.String()
}

// FormatShares lists record counts per label with one-decimal percentages.
func FormatShares(shares []model.LabelShare) string {
	var b strings.Builder
	b.WriteString("🥧 Products by label\n")
	total := 0
	for _, s := range shares {
		total += s.Count
		b.WriteString(fmt.Sprintf("  %s: %d (%.1f%%)\n", s.Label, s.Count, s.Percent))
	}
	b.WriteString(fmt.Sprintf("  total: %d\n", total))
	return b.String()
}

// FormatBars lists the bar chart buckets.
func FormatBars(bars []model.Bar) string {
	if len(bars) == 0 {
		return "📊 No products in the bar chart price range\n"
	}
	var b strings.Builder
	b.WriteString("📊 Mean rank by price range\n")
	for _, bar := range bars {
		b.WriteString(fmt.Sprintf("  %-12s %.2f\n", bar.Label, bar.MeanRank))
	}
	return b.String()
}

// FormatLabels lists the labels with their chart colors.
func FormatLabels(labels []string) string {
	var b strings.Builder
	for i, l := range labels {
		b.WriteString(fmt.Sprintf("  %s #%s\n", l, model.ColorFor(i)))
	}
	return b.String()
}
