package testing

import (
	"testing"
	"time"

	"github.com/go-drift/statefade/pkg/animation"
)

// FakeClock provides controllable time for deterministic animation tests.
type FakeClock = animation.ManualClock

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return animation.NewManualClock()
}

// InstallFakeClock makes a new FakeClock the animation time source for the
// duration of the test.
func InstallFakeClock(t testing.TB) *FakeClock {
	t.Helper()
	clk := NewFakeClock()
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clk
}

// PumpFrames advances the clock by step and steps all animation tickers,
// frames times over.
func PumpFrames(c *FakeClock, frames int, step time.Duration) {
	for range frames {
		c.Advance(step)
		animation.StepTickers()
	}
}
