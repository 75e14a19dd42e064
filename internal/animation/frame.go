// Package animation computes the looping bar-chart animation as a pure
// function of elapsed time, so any timer can drive it.
package animation

import (
	"math"
	"time"

	"RankScope/internal/model"
)

// Timing controls the bar animation.
type Timing struct {
	Delay    time.Duration // stagger between successive bars
	Duration time.Duration // grow time of one bar
	Pause    time.Duration // hold after the last bar is full
}

// DefaultTiming is 300ms stagger, 500ms grow and a 3s hold.
var DefaultTiming = Timing{
	Delay:    300 * time.Millisecond,
	Duration: 500 * time.Millisecond,
	Pause:    3 * time.Second,
}

// CycleLength returns the length of one grow-pause-clear cycle for n bars.
func CycleLength(n int, t Timing) time.Duration {
	if n <= 0 {
		return t.Pause
	}
	return time.Duration(n-1)*t.Delay + t.Duration + t.Pause
}

// Frame returns the bar heights elapsed into the animation.
func Frame(bars []model.Bar, elapsed time.Duration, t Timing) model.BarFrame {
	frame := model.BarFrame{
		Bars:    bars,
		Heights: make([]float64, len(bars)),
	}
	if elapsed < 0 {
		elapsed = 0
	}
	cycle := CycleLength(len(bars), t)
	if cycle <= 0 {
		// degenerate timing: nothing animates, show the final state
		for i, b := range bars {
			frame.Heights[i] = b.MeanRank
		}
		return frame
	}

	frame.Cycle = int(elapsed / cycle)
	at := elapsed % cycle
	for i, b := range bars {
		frame.Heights[i] = b.MeanRank * progress(at-time.Duration(i)*t.Delay, t.Duration)
	}
	return frame
}

// progress is the eased completion of a transition that started since ago.
func progress(since, duration time.Duration) float64 {
	switch {
	case since <= 0:
		return 0
	case since >= duration:
		return 1
	}
	return easeCubicInOut(float64(since) / float64(duration))
}

func easeCubicInOut(x float64) float64 {
	if x <= 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 3)/2
}
