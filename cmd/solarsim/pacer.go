package main

import (
	"time"

	"gonum.org/v1/gonum/floats"
)

// pacer tracks the tick rate over a sliding window of tick durations.
type pacer struct {
	minRate float64 // Hz, zero disables
	size    int
	window  []float64 // seconds
	next    int
}

func newPacer(minRate float64, size int) *pacer {
	if size < 1 {
		size = 1
	}
	return &pacer{minRate: minRate, size: size, window: make([]float64, 0, size)}
}

// Observe records the duration of a tick and reports whether the rate over a full window
// fell below the minimum. The window restarts after each report.
func (p *pacer) Observe(d time.Duration) bool {
	if p.minRate <= 0 {
		return false
	}
	if len(p.window) < p.size {
		p.window = append(p.window, d.Seconds())
	} else {
		p.window[p.next] = d.Seconds()
		p.next = (p.next + 1) % p.size
	}
	if len(p.window) < p.size {
		return false
	}
	total := floats.Sum(p.window)
	if total <= 0 || float64(len(p.window))/total >= p.minRate {
		return false
	}
	p.window = p.window[:0]
	p.next = 0
	return true
}
