// Package testing provides helpers for statefade tests: a controllable
// animation clock and a canvas that records drawing calls.
//
// # Animation Testing
//
// Control time for deterministic cross-fade tests:
//
//	clk := drifttest.InstallFakeClock(t)
//	animator.Paint(surface)
//	drifttest.PumpFrames(clk, 5, 50*time.Millisecond)
//
// # Recording Canvas
//
// Record what a paint callback or layout pass drew and assert on it:
//
//	canvas := drifttest.NewRecordingCanvas(graphics.Size{Width: 200, Height: 40})
//	engine.Draw(canvas, 0, bounds, listlayout.ItemState{Selected: true})
//	texts := canvas.OpsNamed("drawText")
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/statefade/pkg/testing"
package testing
