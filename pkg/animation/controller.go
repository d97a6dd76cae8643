package animation

import (
	"fmt"
	"time"
)

// AnimationStatus is where an AnimationController is in its run.
//
//	Dismissed --Forward--> Forward --last tick--> Completed
//	                          |
//	                          +------Stop------> Stopped
//
// Reset returns any status to Dismissed. Stopped and Completed are
// distinct so a cancelled cross-fade never looks finished.
type AnimationStatus int

const (
	// AnimationDismissed means the controller is at 0 and idle.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the controller is running toward 1.
	AnimationForward
	// AnimationStopped means Stop halted the run part way.
	AnimationStopped
	// AnimationCompleted means the run reached 1 on its own.
	AnimationCompleted
)

var statusNames = [...]string{
	AnimationDismissed: "dismissed",
	AnimationForward:   "forward",
	AnimationStopped:   "stopped",
	AnimationCompleted: "completed",
}

func (s AnimationStatus) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("AnimationStatus(%d)", int(s))
}

type listener[F any] struct {
	id int
	fn F
}

// AnimationController runs Value from 0 to 1 over Duration, one step per
// frame of [StepTickers]. Listeners are called in registration order.
//
// Call Dispose when done.
type AnimationController struct {
	// Value is the eased progress in [0, 1].
	Value float64
	// Duration of a full run. Zero or less completes on the first frame.
	Duration time.Duration
	// Curve eases linear progress. Nil means linear.
	Curve func(float64) float64

	status   AnimationStatus
	ticker   *Ticker
	nextID   int
	onValue  []listener[func()]
	onStatus []listener[func(AnimationStatus)]
}

// NewAnimationController returns a dismissed, linear controller.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{Duration: duration, Curve: LinearCurve}
}

// Forward starts a run from 0, restarting one already in progress.
func (c *AnimationController) Forward() {
	c.stopTicker()
	c.Value = 0
	c.setStatus(AnimationForward)
	c.ticker = NewTicker(c.advance)
	c.ticker.Start()
}

func (c *AnimationController) advance(elapsed time.Duration) {
	linear := 1.0
	if c.Duration > 0 {
		linear = min(float64(elapsed)/float64(c.Duration), 1)
	}
	if c.Curve != nil && linear < 1 {
		c.Value = c.Curve(linear)
	} else {
		c.Value = linear
	}
	for _, l := range c.onValue {
		l.fn()
	}
	if linear >= 1 {
		c.stopTicker()
		c.setStatus(AnimationCompleted)
	}
}

// Stop freezes Value where it is. Only a running controller changes
// status, to AnimationStopped.
func (c *AnimationController) Stop() {
	if c.status != AnimationForward {
		return
	}
	c.stopTicker()
	c.setStatus(AnimationStopped)
}

// Reset stops any run and puts Value back to 0.
func (c *AnimationController) Reset() {
	c.stopTicker()
	c.Value = 0
	c.setStatus(AnimationDismissed)
	for _, l := range c.onValue {
		l.fn()
	}
}

// Status returns the current status.
func (c *AnimationController) Status() AnimationStatus { return c.status }

// IsAnimating reports whether a run is in progress.
func (c *AnimationController) IsAnimating() bool { return c.status == AnimationForward }

// IsCompleted reports whether the last run reached 1 on its own.
func (c *AnimationController) IsCompleted() bool { return c.status == AnimationCompleted }

// AddListener registers fn to run after every Value change and returns
// a function that removes it.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.newID()
	c.onValue = append(c.onValue, listener[func()]{id, fn})
	return func() { c.onValue = removeListener(c.onValue, id) }
}

// AddStatusListener registers fn to run on every status change and
// returns a function that removes it.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.newID()
	c.onStatus = append(c.onStatus, listener[func(AnimationStatus)]{id, fn})
	return func() { c.onStatus = removeListener(c.onStatus, id) }
}

// Dispose stops the controller and drops its listeners.
func (c *AnimationController) Dispose() {
	c.stopTicker()
	c.onValue = nil
	c.onStatus = nil
}

func (c *AnimationController) newID() int {
	c.nextID++
	return c.nextID
}

func (c *AnimationController) stopTicker() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *AnimationController) setStatus(s AnimationStatus) {
	if c.status == s {
		return
	}
	c.status = s
	for _, l := range c.onStatus {
		l.fn(s)
	}
}

func removeListener[F any](ls []listener[F], id int) []listener[F] {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}
