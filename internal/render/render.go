// Package render draws the three RankScope charts to files.
package render

import (
	"fmt"
	"strings"

	"RankScope/internal/model"
)

// Chart file base names inside the output directory.
const (
	ChartLines = "lines"
	ChartPie   = "pie"
	ChartBars  = "bars"
)

// Format is the output image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want svg or png)", s)
}

// Renderer redraws whole charts from data. Every call replaces the previous
// output of that chart.
type Renderer interface {
	RenderLines(sel model.Selection, series []model.Series) error
	RenderPie(shares []model.LabelShare) error
	RenderBars(frame model.BarFrame, maxRank float64) error
	Close() error
}
