// Package bufferedpaint provides double-buffered cross-fade animation
// between two rendered surfaces.
//
// [Platform] is the contract the state animator drives. [Compositor] is a
// software implementation: it renders both endpoints into raster
// surfaces, blends them on every animation frame and blits the current
// frame into the target when the host repaints.
//
// Everything except the process-wide context count runs on the UI thread.
package bufferedpaint

import (
	"image"
	"time"

	"github.com/go-drift/statefade/pkg/animation"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/google/uuid"
)

// Handle identifies one animation context, normally one per widget surface.
type Handle uuid.UUID

// IsZero reports whether h was never issued.
func (h Handle) IsZero() bool {
	return uuid.UUID(h) == uuid.Nil
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Platform is the buffered-animation service used by the state animator.
type Platform interface {
	// Init acquires an animation context. onFrame, if non-nil, is called
	// after each animation frame so the owner can request a repaint.
	Init(onFrame func()) (Handle, error)
	// Uninit releases a context. Unknown handles are ignored.
	Uninit(h Handle)
	// RenderContinuation paints the current frame of h's running
	// animation into target and reports whether one was running.
	RenderContinuation(h Handle, target graphics.Canvas) bool
	// Begin requests a cross-fade of duration d over target. It reports
	// false when d is not positive, the context is unknown, or capacity
	// is exhausted.
	Begin(h Handle, target graphics.Canvas, d time.Duration) (*Animation, bool)
	// End starts a begun animation once both surfaces have been painted.
	End(a *Animation)
	// Stop halts an animation at its current frame. No completion is
	// signalled.
	Stop(a *Animation)
	// StopAll stops whatever h has in flight.
	StopAll(h Handle)
}

type animPhase int

const (
	phaseBegun animPhase = iota
	phaseRunning
	phaseDone
)

// Animation is one cross-fade between a "from" and a "to" surface.
type Animation struct {
	// ID is unique per animation and appears in logs.
	ID uuid.UUID
	// Duration is the requested length of the cross-fade.
	Duration time.Duration

	owner      Handle
	target     graphics.Canvas
	from, to   *graphics.RasterCanvas
	frame      *image.RGBA
	controller *animation.AnimationController
	phase      animPhase
}

// From is the surface the "from" state is painted into.
func (a *Animation) From() graphics.Canvas { return a.from }

// To is the surface the "to" state is painted into.
func (a *Animation) To() graphics.Canvas { return a.to }

// Frame is the most recently blended frame.
func (a *Animation) Frame() *image.RGBA { return a.frame }

// Progress returns the eased cross-fade progress in [0, 1].
func (a *Animation) Progress() float64 {
	if a.controller == nil {
		return 0
	}
	return a.controller.Value
}

// Running reports whether the animation has started and not yet finished
// or been stopped.
func (a *Animation) Running() bool {
	return a.phase == phaseRunning
}

// Completed reports whether the animation ran to its end.
func (a *Animation) Completed() bool {
	return a.controller != nil && a.controller.IsCompleted()
}
