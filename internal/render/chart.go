package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"RankScope/internal/logger"
	"RankScope/internal/model"
)

const barColor = "4682b4"

// Options configures a ChartRenderer.
type Options struct {
	Dir    string
	Format Format
	Width  int // pixels, default 800
	Height int // pixels, default 480
	// MaxRank fixes the y axis of the line plot. Zero derives it from the
	// series being drawn.
	MaxRank float64
}

// ChartRenderer draws charts with go-chart and writes them atomically.
type ChartRenderer struct {
	mu   sync.Mutex
	opts Options
}

// NewChartRenderer creates the output directory and returns a renderer.
func NewChartRenderer(opts Options) (*ChartRenderer, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 480
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	logger.Info("chart renderer writing %s files to %s", opts.Format, opts.Dir)
	return &ChartRenderer{opts: opts}, nil
}

// Path returns the file a chart is written to.
func (r *ChartRenderer) Path(name string) string {
	return filepath.Join(r.opts.Dir, name+"."+string(r.opts.Format))
}

// RenderLines draws one line per series over the selection's price domain.
func (r *ChartRenderer) RenderLines(sel model.Selection, series []model.Series) error {
	lo, hi := sel.Start, sel.End
	if !(hi > lo) {
		// all prices zero: keep a non-empty axis
		hi = lo + 1
	}

	ceiling := r.opts.MaxRank
	var drawn []chart.Series
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i], ys[i] = p.BucketStart, p.MeanRank
			if r.opts.MaxRank <= 0 {
				ceiling = math.Max(ceiling, p.MeanRank)
			}
		}
		col := drawing.ColorFromHex(s.Color)
		drawn = append(drawn, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2,
				DotColor:    col,
				DotWidth:    3,
			},
		})
	}
	if ceiling <= 0 {
		ceiling = 1
	}

	title := "Mean rank by price"
	if !sel.Full {
		title = fmt.Sprintf("Mean rank by price, $%s to $%s", formatPrice(lo), formatPrice(hi))
	}
	ch := chart.Chart{
		Title:      title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Price",
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: dollarFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Mean rank",
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling},
		},
		Series: drawn,
	}
	if len(drawn) == 0 {
		logger.Debug("no defined points in [%.2f, %.2f], drawing empty axes", lo, hi)
		ch.Series = []chart.Series{blankSeries(lo, hi)}
	} else {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return r.write(ChartLines, func(w io.Writer) error {
		return ch.Render(r.provider(), w)
	})
}

// RenderPie draws the share of records per label.
func (r *ChartRenderer) RenderPie(shares []model.LabelShare) error {
	if len(shares) == 0 {
		return r.write(ChartPie, r.blank("Products by label"))
	}
	values := make([]chart.Value, 0, len(shares))
	for i, s := range shares {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Percent),
			Value: float64(s.Count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(model.ColorFor(i)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	pie := chart.PieChart{
		Title:  "Products by label",
		Width:  r.opts.Height,
		Height: r.opts.Height,
		Values: values,
	}
	return r.write(ChartPie, func(w io.Writer) error {
		return pie.Render(r.provider(), w)
	})
}

// RenderBars draws one frame of the bar animation. maxRank fixes the y axis
// so bars grow against a stable scale.
func (r *ChartRenderer) RenderBars(frame model.BarFrame, maxRank float64) error {
	if len(frame.Bars) == 0 {
		return r.write(ChartBars, r.blank("Mean rank by price range"))
	}
	if math.IsNaN(maxRank) || maxRank <= 0 {
		maxRank = 1
	}
	values := make([]chart.Value, len(frame.Bars))
	for i, b := range frame.Bars {
		h := 0.0
		if i < len(frame.Heights) {
			h = frame.Heights[i]
		}
		values[i] = chart.Value{
			Label: b.Label,
			Value: h,
			Style: chart.Style{FillColor: drawing.ColorFromHex(barColor), StrokeColor: drawing.ColorFromHex(barColor)},
		}
	}
	bc := chart.BarChart{
		Title:      "Mean rank by price range",
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   40,
		YAxis: chart.YAxis{
			Name:  "Mean rank",
			Range: &chart.ContinuousRange{Min: 0, Max: maxRank},
		},
		Bars: values,
	}
	return r.write(ChartBars, func(w io.Writer) error {
		return bc.Render(r.provider(), w)
	})
}

// Close is a no-op; every chart is flushed when written.
func (r *ChartRenderer) Close() error { return nil }

func (r *ChartRenderer) provider() chart.RendererProvider {
	if r.opts.Format == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// blank draws empty axes for a chart with nothing to show.
func (r *ChartRenderer) blank(title string) func(io.Writer) error {
	ch := chart.Chart{
		Title:  title,
		Width:  r.opts.Width,
		Height: r.opts.Height,
		XAxis:  chart.XAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series: []chart.Series{blankSeries(0, 1)},
	}
	return func(w io.Writer) error {
		return ch.Render(r.provider(), w)
	}
}

// write renders into a temp file next to the target and renames it over the
// previous chart so readers never see a partial file.
func (r *ChartRenderer) write(name string, draw func(io.Writer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.opts.Dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := draw(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), r.Path(name)); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	logger.Debug("wrote %s", r.Path(name))
	return nil
}

func blankSeries(lo, hi float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{lo, hi},
		YValues: []float64{0, 0},
		Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
	}
}

func dollarFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return "$" + formatPrice(f)
	}
	return ""
}

func formatPrice(f float64) string {
	return fmt.Sprintf("%g", math.Round(f*100)/100)
}
