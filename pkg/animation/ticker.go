// Package animation provides the timing primitives behind statefade's
// cross-fades.
//
// An [AnimationController] moves a progress value from 0 to 1 over a
// duration, shaped by an easing curve such as [EaseInOut] (see
// [ParseCurve] for the named set). Stop halts it without completing.
// [LerpColor] blends two colours channel by channel.
//
// Nothing here starts goroutines. Tickers advance only when the host's
// frame loop calls [StepTickers], so every callback runs on the UI thread,
// and they advance in the order they were started. Tests replace the time
// source with [SetClock].
package animation

import (
	"slices"
	"sync"
	"time"
)

// frameQueue holds running tickers in start order.
var frameQueue struct {
	mu      sync.Mutex
	tickers []*Ticker
}

// Ticker calls onTick with the time elapsed since Start each time the
// host steps the frame loop.
type Ticker struct {
	onTick  func(elapsed time.Duration)
	started time.Time
	running bool
}

// NewTicker returns a stopped ticker.
func NewTicker(onTick func(elapsed time.Duration)) *Ticker {
	return &Ticker{onTick: onTick}
}

// Start records the start time and joins the frame loop. Starting a
// running ticker does nothing.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	t.started = Now()
	frameQueue.mu.Lock()
	frameQueue.tickers = append(frameQueue.tickers, t)
	frameQueue.mu.Unlock()
}

// Stop leaves the frame loop. A stopped ticker is never called again,
// even later in the frame that stopped it.
func (t *Ticker) Stop() {
	if !t.running {
		return
	}
	t.running = false
	frameQueue.mu.Lock()
	frameQueue.tickers = slices.DeleteFunc(frameQueue.tickers, func(o *Ticker) bool { return o == t })
	frameQueue.mu.Unlock()
}

// IsActive reports whether the ticker is in the frame loop.
func (t *Ticker) IsActive() bool { return t.running }

// Elapsed returns the time since Start, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	if !t.running {
		return 0
	}
	return Since(t.started)
}

// StepTickers runs one frame: every running ticker is called once, in
// start order. Tickers started during the frame wait for the next one.
func StepTickers() {
	frameQueue.mu.Lock()
	frame := slices.Clone(frameQueue.tickers)
	frameQueue.mu.Unlock()

	for _, t := range frame {
		if t.running && t.onTick != nil {
			t.onTick(Since(t.started))
		}
	}
}

// HasActiveTickers reports whether any ticker is running.
func HasActiveTickers() bool {
	frameQueue.mu.Lock()
	defer frameQueue.mu.Unlock()
	return len(frameQueue.tickers) > 0
}
