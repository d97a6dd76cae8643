// Package stateanim cross-fades a widget between visual states.
//
// An [Animator] tracks the state currently on screen and the state the
// widget should show next. Each paint either hands both states to the
// buffered-paint platform for a cross-fade or paints the pending state
// directly. Hosts drive it from the UI thread only.
package stateanim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-drift/statefade/pkg/bufferedpaint"
	"github.com/go-drift/statefade/pkg/errors"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/logging"
	"github.com/go-drift/statefade/pkg/metrics"
	"github.com/go-drift/statefade/pkg/visualstate"
)

// DefaultDuration is the cross-fade length used when no transition is
// registered for a state pair.
const DefaultDuration = 200 * time.Millisecond

// Phase describes what the animator is doing right now.
type Phase struct {
	Animating bool
	From, To  visualstate.State
}

// Idle is the phase with nothing in flight.
var Idle = Phase{}

func (p Phase) String() string {
	if !p.Animating {
		return "idle"
	}
	return fmt.Sprintf("animating(%s→%s)", p.From, p.To)
}

// Animator owns the current/pending state pair for one widget.
type Animator struct {
	// DefaultDuration is used when no transition matches the state pair.
	DefaultDuration time.Duration

	// OnPaintVisualState paints one state. It must not call SetState.
	OnPaintVisualState func(s visualstate.State, c graphics.Canvas)

	// OnInvalidate is called whenever the widget needs a repaint.
	OnInvalidate func()

	registry  *visualstate.Registry
	platform  bufferedpaint.Platform
	supported bool
	enabled   bool

	current visualstate.State
	pending visualstate.State

	handle    bufferedpaint.Handle
	hasHandle bool
	surface   bool
	inflight  *bufferedpaint.Animation
	from, to  visualstate.State

	size      graphics.Size
	sizeKnown bool
	painting  bool

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Animator.
type Option func(*Animator)

// WithLogger sets the logger for state and animation events.
func WithLogger(l *slog.Logger) Option {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics records animation activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Animator) { a.metrics = m }
}

// WithDefaultDuration overrides DefaultDuration.
func WithDefaultDuration(d time.Duration) Option {
	return func(a *Animator) { a.DefaultDuration = d }
}

// New returns an Animator showing initial. A nil registry gets an empty
// one. A nil platform, or caps that do not support buffered animation,
// leave the animator permanently in direct-paint mode.
func New(reg *visualstate.Registry, platform bufferedpaint.Platform, caps bufferedpaint.Capabilities, initial visualstate.State, opts ...Option) (*Animator, error) {
	if err := visualstate.Validate("stateanim.New", initial); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = visualstate.NewRegistry()
	}
	a := &Animator{
		DefaultDuration: DefaultDuration,
		registry:        reg,
		platform:        platform,
		supported:       platform != nil && caps.Supported(),
		enabled:         true,
		current:         initial,
		pending:         initial,
		logger:          logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if !a.supported {
		a.logger.Debug("buffered animation unsupported, painting directly", "os_version", caps.OSVersion)
	}
	return a, nil
}

// Registry returns the transitions and triggers this animator uses.
func (a *Animator) Registry() *visualstate.Registry {
	return a.registry
}

// Supported reports whether the platform offers buffered animation.
func (a *Animator) Supported() bool {
	return a.supported
}

// State returns the pending state, the one the widget is heading to.
func (a *Animator) State() visualstate.State {
	return a.pending
}

// Current returns the state most recently committed to the screen.
func (a *Animator) Current() visualstate.State {
	return a.current
}

// SetState records s as the pending state. A change cancels any
// in-flight cross-fade and invalidates; an unchanged value does nothing.
// Calling SetState from OnPaintVisualState panics.
func (a *Animator) SetState(s visualstate.State) {
	if a.painting {
		panic(&errors.Error{
			Op:        "stateanim.SetState",
			Kind:      errors.KindContract,
			Err:       fmt.Errorf("state changed to %s while painting", s),
			Timestamp: time.Now(),
		})
	}
	if !s.Valid() {
		errors.Report(errors.Config("stateanim.SetState", "visual state %q is not valid", string(s)))
		return
	}
	if s == a.pending {
		return
	}
	a.logger.Debug("visual state changed", "from", a.pending, "to", s)
	a.pending = s
	a.cancel()
	a.invalidate()
}

// Enabled reports whether buffered animation is switched on.
func (a *Animator) Enabled() bool {
	return a.enabled
}

// SetEnabled switches buffered animation on or off. Switching off
// releases the animation context; switching on with a live surface
// acquires one.
func (a *Animator) SetEnabled(enabled bool) {
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	if enabled {
		if a.surface {
			a.acquire()
		}
	} else {
		a.release()
	}
	a.invalidate()
}

// Phase reports whether a cross-fade is in flight.
func (a *Animator) Phase() Phase {
	if a.inflight == nil || !a.inflight.Running() {
		return Idle
	}
	return Phase{Animating: true, From: a.from, To: a.to}
}

// DurationFor returns the cross-fade length for a change from one state to
// another: zero when they are equal, the registered transition when one
// exists, DefaultDuration otherwise.
func (a *Animator) DurationFor(from, to visualstate.State) time.Duration {
	if from == to {
		return 0
	}
	if d, ok := a.registry.FindTransition(from, to); ok {
		return d
	}
	return a.DefaultDuration
}

// Paint renders the widget face into target.
func (a *Animator) Paint(target graphics.Canvas) {
	if !a.buffered() {
		a.paintDirect(target)
		return
	}
	if a.platform.RenderContinuation(a.handle, target) {
		return
	}

	from, to := a.current, a.pending
	changed := from != to
	d := time.Duration(0)
	if changed {
		d = a.DurationFor(from, to)
	}

	anim, ok := a.platform.Begin(a.handle, target, d)
	if !ok {
		if changed && d > 0 {
			a.metrics.AnimationRejected()
			a.logger.Debug("cross-fade rejected", "from", from, "to", to, "duration", d)
		}
		a.paintDirect(target)
		return
	}

	a.paintState(from, anim.From())
	a.paintState(to, anim.To())
	a.current = to
	a.inflight = anim
	a.from, a.to = from, to
	a.platform.End(anim)
	a.metrics.AnimationStarted(d)
	a.logger.Debug("cross-fade accepted", "from", from, "to", to, "duration", d, "id", anim.ID.String())
}

// SurfaceCreated is called when the native surface exists. It acquires
// the animation context when buffered animation is usable.
func (a *Animator) SurfaceCreated(size graphics.Size) {
	a.surface = true
	a.size = size
	a.sizeKnown = true
	if a.enabled {
		a.acquire()
	}
}

// SurfaceDestroyed releases the animation context.
func (a *Animator) SurfaceDestroyed() {
	a.surface = false
	a.release()
}

// Dispose tears the animator down. It is safe to call more than once.
func (a *Animator) Dispose() {
	a.surface = false
	a.release()
}

// Resize stops any in-flight cross-fade, moves explicit trigger bounds by
// their anchors and records size as the new baseline.
func (a *Animator) Resize(size graphics.Size) {
	if a.hasHandle {
		if a.inflight != nil && a.inflight.Running() {
			a.metrics.AnimationCancelled()
		}
		a.platform.StopAll(a.handle)
		a.inflight = nil
	}
	if a.sizeKnown {
		delta := graphics.Size{Width: size.Width - a.size.Width, Height: size.Height - a.size.Height}
		if delta.Width != 0 || delta.Height != 0 {
			a.registry.ResizeTriggers(delta)
			a.logger.Debug("triggers re-anchored", "dw", delta.Width, "dh", delta.Height)
		}
	}
	a.size = size
	a.sizeKnown = true
}

// Size returns the baseline size from the last resize or surface creation.
func (a *Animator) Size() graphics.Size {
	return a.size
}

// HasContext reports whether an animation context is currently held.
func (a *Animator) HasContext() bool {
	return a.hasHandle
}

func (a *Animator) buffered() bool {
	return a.supported && a.enabled && a.hasHandle
}

func (a *Animator) acquire() {
	if a.hasHandle || !a.supported {
		return
	}
	h, err := a.platform.Init(a.invalidate)
	if err != nil {
		a.logger.Debug("animation context unavailable", "error", err)
		return
	}
	a.handle = h
	a.hasHandle = true
}

func (a *Animator) release() {
	if !a.hasHandle {
		return
	}
	a.cancel()
	a.platform.Uninit(a.handle)
	a.handle = bufferedpaint.Handle{}
	a.hasHandle = false
}

func (a *Animator) cancel() {
	if a.inflight == nil {
		return
	}
	if a.inflight.Running() {
		a.metrics.AnimationCancelled()
		a.logger.Debug("cross-fade cancelled", "from", a.from, "to", a.to, "progress", a.inflight.Progress())
	}
	a.platform.Stop(a.inflight)
	a.inflight = nil
}

func (a *Animator) paintDirect(target graphics.Canvas) {
	a.paintState(a.pending, target)
	a.current = a.pending
	a.metrics.DirectPaint()
}

func (a *Animator) paintState(s visualstate.State, c graphics.Canvas) {
	a.painting = true
	defer func() { a.painting = false }()
	defer errors.Recover("stateanim.Paint")
	if a.OnPaintVisualState != nil {
		a.OnPaintVisualState(s, c)
	}
}

func (a *Animator) invalidate() {
	if a.OnInvalidate != nil {
		a.OnInvalidate()
	}
}
