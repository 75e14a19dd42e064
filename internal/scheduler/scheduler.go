package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"RankScope/internal/animation"
	"RankScope/internal/calculator"
	"RankScope/internal/logger"
	"RankScope/internal/model"
	"RankScope/internal/render"
	"RankScope/internal/report"
	"RankScope/internal/viewport"
)

const helpText = `Available commands:
• brush LO HI      narrow the line plot to prices LO..HI
• select X0 X1     narrow by pixel offsets on the plot
• reset            show the full price range
• series [LABEL]   list mean ranks in the current range
• labels           list labels and their colors
• pie              label shares
• bars             mean rank per bar chart price range
• render           redraw all charts
• help`

// Scheduler drives the bar animation and serves console commands.
type Scheduler struct {
	Cron     *cron.Cron
	Dataset  *model.Dataset
	Viewport *viewport.Manager
	Renderer render.Renderer
	Bars     []model.Bar
	Timing   animation.Timing

	shares []model.LabelShare

	mu        sync.Mutex
	startedAt time.Time
	lastCycle int
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ds *model.Dataset, vp *viewport.Manager, r render.Renderer, bars []model.Bar, timing animation.Timing) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Dataset:  ds,
		Viewport: vp,
		Renderer: r,
		Bars:     bars,
		Timing:   timing,
		shares:   calculator.LabelShares(ds.Records),
	}
}

// Register adds the animation frame job.
func (s *Scheduler) Register(frameSpec string) error {
	if _, err := s.Cron.AddFunc(frameSpec, s.frameTask); err != nil {
		return fmt.Errorf("register frame task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and the animation clock.
func (s *Scheduler) Start() {
	s.mu.Lock()
	s.startedAt = time.Now()
	s.lastCycle = 0
	s.mu.Unlock()

	s.Cron.Start()
	logger.Info("scheduler started (%d bars, cycle %v)", len(s.Bars), animation.CycleLength(len(s.Bars), s.Timing))
}

// Stop stops the cron scheduler and waits for a running frame to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RenderAll draws all three charts from the current state.
func (s *Scheduler) RenderAll() error {
	if err := s.RenderLines(); err != nil {
		return err
	}
	if err := s.Renderer.RenderPie(s.shares); err != nil {
		return err
	}
	return s.RenderFrame(time.Now())
}

// RenderLines redraws the line plot for the current selection.
func (s *Scheduler) RenderLines() error {
	series, err := s.Viewport.Series()
	if err != nil {
		return err
	}
	return s.Renderer.RenderLines(s.Viewport.Selection(), series)
}

// RenderFrame draws the bar chart as it looks at now. Before Start the bars
// are drawn fully grown.
func (s *Scheduler) RenderFrame(now time.Time) error {
	s.mu.Lock()
	started := s.startedAt
	s.mu.Unlock()

	var elapsed time.Duration
	if started.IsZero() {
		elapsed = animation.CycleLength(len(s.Bars), s.Timing) - s.Timing.Pause
	} else {
		elapsed = now.Sub(started)
	}

	frame := animation.Frame(s.Bars, elapsed, s.Timing)
	s.mu.Lock()
	if !started.IsZero() && frame.Cycle != s.lastCycle {
		logger.Debug("bar animation cycle %d", frame.Cycle)
		s.lastCycle = frame.Cycle
	}
	s.mu.Unlock()
	return s.Renderer.RenderBars(frame, s.Dataset.MaxRank)
}

func (s *Scheduler) frameTask() {
	if err := s.RenderFrame(time.Now()); err != nil {
		logger.Error("render frame: %v", err)
	}
}

// HandleCommand processes a console command and returns a reply.
func (s *Scheduler) HandleCommand(args []string) string {
	if len(args) == 0 {
		return ""
	}
	cmd := strings.TrimPrefix(strings.ToLower(args[0]), "/")
	switch cmd {
	case "brush", "select":
		if len(args) != 3 {
			return fmt.Sprintf("usage: %s FROM TO", cmd)
		}
		a, errA := strconv.ParseFloat(args[1], 64)
		b, errB := strconv.ParseFloat(args[2], 64)
		if errA != nil || errB != nil {
			return fmt.Sprintf("❌ %s: bounds must be numbers, got %q %q", cmd, args[1], args[2])
		}
		if cmd == "brush" {
			s.Viewport.Brush(a, b)
		} else {
			s.Viewport.BrushPixels(a, b)
		}
		return s.redrawLines()
	case "reset":
		s.Viewport.Reset()
		return s.redrawLines()
	case "series":
		sel := s.Viewport.Selection()
		if len(args) > 1 {
			label := strings.Join(args[1:], " ")
			one, err := s.Viewport.SeriesFor(label)
			if err != nil {
				return "❌ " + err.Error()
			}
			return report.FormatSeries(sel, []model.Series{one})
		}
		series, err := s.Viewport.Series()
		if err != nil {
			return "❌ " + err.Error()
		}
		return report.FormatSeries(sel, series)
	case "labels":
		return report.FormatLabels(s.Dataset.Labels)
	case "pie":
		return report.FormatShares(s.shares)
	case "bars":
		return report.FormatBars(s.Bars)
	case "render":
		if err := s.RenderAll(); err != nil {
			logger.Warn("render: %v", err)
			return "❌ render failed: " + err.Error()
		}
		return "✅ charts rendered"
	case "help":
		return helpText
	default:
		return fmt.Sprintf("unknown command %q\n\n%s", args[0], helpText)
	}
}

// redrawLines re-renders the line plot and describes the new selection.
func (s *Scheduler) redrawLines() string {
	series, err := s.Viewport.Series()
	if err != nil {
		logger.Error("reaggregate: %v", err)
		return "❌ " + err.Error()
	}
	sel := s.Viewport.Selection()
	if err := s.Renderer.RenderLines(sel, series); err != nil {
		logger.Warn("render lines: %v", err)
	}
	return report.FormatSeries(sel, series)
}
