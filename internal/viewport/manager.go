// Package viewport tracks the visible price range of the line plot and turns
// brush and reset gestures into re-aggregated series.
package viewport

import (
	"fmt"
	"math"
	"sync"

	"github.com/aclements/go-moremath/scale"
	"github.com/google/uuid"

	"RankScope/internal/calculator"
	"RankScope/internal/logger"
	"RankScope/internal/model"
)

// Manager holds the current selection with concurrency safety.
type Manager struct {
	mu        sync.Mutex
	ds        *model.Dataset
	width     float64
	plotWidth float64
	sel       model.Selection
}

// NewManager creates a Manager showing the full price range.
func NewManager(ds *model.Dataset, width, plotWidth float64) (*Manager, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", calculator.ErrInvalidArgument)
	}
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return nil, fmt.Errorf("%w: bucket width must be positive, got %v", calculator.ErrInvalidArgument, width)
	}
	if math.IsNaN(plotWidth) || plotWidth <= 0 {
		return nil, fmt.Errorf("%w: plot width must be positive, got %v", calculator.ErrInvalidArgument, plotWidth)
	}
	m := &Manager{ds: ds, width: width, plotWidth: plotWidth}
	m.sel = m.full()
	return m, nil
}

// Width returns the bucket width.
func (m *Manager) Width() float64 { return m.width }

// Selection returns a copy of the current selection.
func (m *Manager) Selection() model.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sel
}

// Brush narrows the view to [lower, upper], snapped outward to the bucket
// grid. A zero-width or non-overlapping range reverts to the full range.
func (m *Manager) Brush(lower, upper float64) model.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brushLocked(lower, upper)
}

// BrushPixels maps a pixel-space drag over the plot through the current x
// scale and brushes the resulting price range.
func (m *Manager) BrushPixels(x0, x1 float64) model.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()

	lo, hi := m.domainLocked()
	xs := scale.Linear{Min: lo, Max: hi}
	p0 := xs.Unmap(clamp(x0, 0, m.plotWidth) / m.plotWidth)
	p1 := xs.Unmap(clamp(x1, 0, m.plotWidth) / m.plotWidth)
	logger.Debug("pixel brush [%.1f, %.1f] over [%.2f, %.2f] -> prices [%.2f, %.2f]", x0, x1, lo, hi, p0, p1)
	return m.brushLocked(p0, p1)
}

// Reset shows the full price range again.
func (m *Manager) Reset() model.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sel = m.full()
	logger.Info("selection %s: reset to full range [0, %.2f]", m.sel.ID, m.ds.MaxPrice)
	return m.sel
}

// Domain returns the price interval the x axis currently spans: the
// selection's grid-snapped Start and End. Brushing the whole visible plot
// again leaves it unchanged.
func (m *Manager) Domain() (lo, hi float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.domainLocked()
}

// Series re-aggregates every label over the current selection, keeping only
// defined points. Labels keep their dataset order and palette color.
func (m *Manager) Series() ([]model.Series, error) {
	sel := m.Selection()
	out := make([]model.Series, 0, len(m.ds.Labels))
	for i, label := range m.ds.Labels {
		s, err := m.series(sel, i, label)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SeriesFor is Series for a single label.
func (m *Manager) SeriesFor(label string) (model.Series, error) {
	for i, l := range m.ds.Labels {
		if l == label {
			return m.series(m.Selection(), i, label)
		}
	}
	return model.Series{}, fmt.Errorf("unknown label %q", label)
}

func (m *Manager) series(sel model.Selection, i int, label string) (model.Series, error) {
	points, err := calculator.Reaggregate(m.ds.Records, label, sel.Lower, sel.Upper, m.width)
	if err != nil {
		return model.Series{}, fmt.Errorf("series %q: %w", label, err)
	}
	return model.Series{
		Label:  label,
		Color:  model.ColorFor(i),
		Points: calculator.FilterDefined(points),
	}, nil
}

func (m *Manager) brushLocked(lower, upper float64) model.Selection {
	if upper < lower {
		lower, upper = upper, lower
	}
	maxPrice := m.ds.MaxPrice
	if math.IsNaN(lower) || math.IsNaN(upper) || upper < 0 || lower > maxPrice {
		logger.Warn("brush [%v, %v] outside [0, %.2f], showing full range", lower, upper, maxPrice)
		m.sel = m.full()
		return m.sel
	}
	lower = clamp(lower, 0, maxPrice)
	upper = clamp(upper, 0, maxPrice)
	if lower == upper {
		logger.Debug("zero-width brush at %.2f, showing full range", lower)
		m.sel = m.full()
		return m.sel
	}

	m.sel = model.Selection{
		ID:    uuid.NewString(),
		Lower: lower,
		Upper: upper,
		Start: calculator.SnapDown(lower, m.width),
		End:   calculator.SnapUp(upper, m.width),
	}
	logger.Info("selection %s: brush [%.2f, %.2f] snapped to [%.2f, %.2f]", m.sel.ID, lower, upper, m.sel.Start, m.sel.End)
	return m.sel
}

func (m *Manager) domainLocked() (lo, hi float64) {
	return m.sel.Start, m.sel.End
}

func (m *Manager) full() model.Selection {
	return model.Selection{
		ID:    uuid.NewString(),
		Lower: 0,
		Upper: m.ds.MaxPrice,
		Start: 0,
		End:   calculator.SnapUp(m.ds.MaxPrice, m.width),
		Full:  true,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
