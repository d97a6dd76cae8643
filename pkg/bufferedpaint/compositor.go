package bufferedpaint

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/go-drift/statefade/pkg/animation"
	"github.com/go-drift/statefade/pkg/errors"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/logging"
	"github.com/google/uuid"
)

// DefaultMaxInFlight bounds concurrent cross-fades per compositor.
const DefaultMaxInFlight = 16

var (
	processMu   sync.Mutex
	processRefs int
)

// ProcessRefs returns the number of live animation contexts across all
// compositors in the process.
func ProcessRefs() int {
	processMu.Lock()
	defer processMu.Unlock()
	return processRefs
}

func acquireProcess() (first bool) {
	processMu.Lock()
	defer processMu.Unlock()
	processRefs++
	return processRefs == 1
}

func releaseProcess() (last bool) {
	processMu.Lock()
	defer processMu.Unlock()
	if processRefs == 0 {
		return false
	}
	processRefs--
	return processRefs == 0
}

type paintContext struct {
	onFrame func()
	anim    *Animation
}

// Compositor is a software [Platform] backed by raster surfaces.
type Compositor struct {
	// MaxInFlight caps running cross-fades. Zero or less means
	// DefaultMaxInFlight.
	MaxInFlight int

	fonts    *graphics.FontManager
	curve    func(float64) float64
	logger   *slog.Logger
	contexts map[Handle]*paintContext
	closed   bool
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLogger sets the logger for context and animation events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFonts sets the font manager used by the off-screen surfaces.
func WithFonts(f *graphics.FontManager) Option {
	return func(c *Compositor) { c.fonts = f }
}

// WithCurve sets the easing curve of every cross-fade. Nil keeps
// animation.EaseInOut.
func WithCurve(curve func(float64) float64) Option {
	return func(c *Compositor) {
		if curve != nil {
			c.curve = curve
		}
	}
}

// WithMaxInFlight sets the in-flight cap.
func WithMaxInFlight(n int) Option {
	return func(c *Compositor) { c.MaxInFlight = n }
}

// NewCompositor returns a ready Compositor.
func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{
		MaxInFlight: DefaultMaxInFlight,
		curve:       animation.EaseInOut,
		logger:      logging.NewNop(),
		contexts:    make(map[Handle]*paintContext),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init implements [Platform].
func (c *Compositor) Init(onFrame func()) (Handle, error) {
	if c.closed {
		return Handle{}, &errors.Error{
			Op:   "bufferedpaint.Init",
			Kind: errors.KindPlatform,
			Err:  fmt.Errorf("compositor is closed"),
		}
	}
	h := Handle(uuid.New())
	c.contexts[h] = &paintContext{onFrame: onFrame}
	if acquireProcess() {
		c.logger.Debug("buffered paint initialized")
	}
	c.logger.Debug("animation context acquired", "handle", h.String())
	return h, nil
}

// Uninit implements [Platform].
func (c *Compositor) Uninit(h Handle) {
	ctx, ok := c.contexts[h]
	if !ok {
		return
	}
	if ctx.anim != nil {
		c.Stop(ctx.anim)
	}
	delete(c.contexts, h)
	c.logger.Debug("animation context released", "handle", h.String())
	if releaseProcess() {
		c.logger.Debug("buffered paint uninitialized")
	}
}

// Close releases every context. Later Init calls fail.
func (c *Compositor) Close() {
	for h := range c.contexts {
		c.Uninit(h)
	}
	c.closed = true
}

// Contexts returns the number of live contexts on this compositor.
func (c *Compositor) Contexts() int {
	return len(c.contexts)
}

// InFlight returns the number of begun or running animations.
func (c *Compositor) InFlight() int {
	n := 0
	for _, ctx := range c.contexts {
		if ctx.anim != nil {
			n++
		}
	}
	return n
}

func (c *Compositor) maxInFlight() int {
	if c.MaxInFlight <= 0 {
		return DefaultMaxInFlight
	}
	return c.MaxInFlight
}

// RenderContinuation implements [Platform].
func (c *Compositor) RenderContinuation(h Handle, target graphics.Canvas) bool {
	ctx, ok := c.contexts[h]
	if !ok || ctx.anim == nil || !ctx.anim.Running() {
		return false
	}
	target.DrawImage(ctx.anim.frame, graphics.Offset{})
	return true
}

// Begin implements [Platform].
func (c *Compositor) Begin(h Handle, target graphics.Canvas, d time.Duration) (*Animation, bool) {
	ctx, ok := c.contexts[h]
	if !ok || d <= 0 || target == nil {
		return nil, false
	}
	size := target.Size()
	if size.IsEmpty() {
		return nil, false
	}
	if ctx.anim != nil {
		c.Stop(ctx.anim)
	}
	if c.InFlight() >= c.maxInFlight() {
		c.logger.Debug("cross-fade declined", "handle", h.String(), "reason", "capacity")
		return nil, false
	}

	from := graphics.NewRasterCanvas(size, c.fonts)
	to := graphics.NewRasterCanvas(size, c.fonts)
	controller := animation.NewAnimationController(d)
	controller.Curve = c.curve
	a := &Animation{
		ID:         uuid.New(),
		Duration:   d,
		owner:      h,
		target:     target,
		from:       from,
		to:         to,
		frame:      image.NewRGBA(from.Image().Bounds()),
		controller: controller,
		phase:      phaseBegun,
	}
	ctx.anim = a
	return a, true
}

// End implements [Platform].
func (c *Compositor) End(a *Animation) {
	if a == nil || a.phase != phaseBegun {
		return
	}
	ctx, ok := c.contexts[a.owner]
	if !ok || ctx.anim != a {
		a.phase = phaseDone
		return
	}
	a.phase = phaseRunning
	graphics.BlendImages(a.frame, a.from.Image(), a.to.Image(), 0)
	a.target.DrawImage(a.frame, graphics.Offset{})

	a.controller.AddListener(func() {
		graphics.BlendImages(a.frame, a.from.Image(), a.to.Image(), a.controller.Value)
		if ctx.onFrame != nil {
			ctx.onFrame()
		}
	})
	a.controller.AddStatusListener(func(s animation.AnimationStatus) {
		if s == animation.AnimationCompleted {
			a.phase = phaseDone
			c.detach(a)
			c.logger.Debug("cross-fade completed", "id", a.ID.String())
		}
	})
	c.logger.Debug("cross-fade started", "id", a.ID.String(), "duration", a.Duration)
	a.controller.Forward()
}

// Stop implements [Platform].
func (c *Compositor) Stop(a *Animation) {
	if a == nil || a.phase == phaseDone {
		return
	}
	a.phase = phaseDone
	a.controller.Stop()
	a.controller.Dispose()
	c.detach(a)
	c.logger.Debug("cross-fade stopped", "id", a.ID.String(), "progress", a.controller.Value)
}

// StopAll implements [Platform].
func (c *Compositor) StopAll(h Handle) {
	if ctx, ok := c.contexts[h]; ok && ctx.anim != nil {
		c.Stop(ctx.anim)
	}
}

func (c *Compositor) detach(a *Animation) {
	if ctx, ok := c.contexts[a.owner]; ok && ctx.anim == a {
		ctx.anim = nil
	}
}
