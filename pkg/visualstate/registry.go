package visualstate

import (
	"fmt"
	"time"

	"github.com/go-drift/statefade/pkg/graphics"
)

// Transition is the cross-fade duration for one ordered state change.
// Identity is (From, To); Duration is mutable metadata.
type Transition struct {
	From     State
	To       State
	Duration time.Duration
}

// TriggerType selects the input condition a trigger watches.
type TriggerType int

const (
	// TriggerFocused holds while the widget has keyboard focus.
	TriggerFocused TriggerType = iota
	// TriggerHot holds while the pointer is inside the trigger bounds.
	TriggerHot
	// TriggerPushed holds while the primary button is down with the
	// pointer inside the trigger bounds.
	TriggerPushed
)

func (t TriggerType) String() string {
	switch t {
	case TriggerFocused:
		return "focused"
	case TriggerHot:
		return "hot"
	case TriggerPushed:
		return "pushed"
	default:
		return fmt.Sprintf("TriggerType(%d)", int(t))
	}
}

// ParseTriggerType maps "focused", "hot" and "pushed" to trigger types.
func ParseTriggerType(name string) (TriggerType, error) {
	switch name {
	case "focused":
		return TriggerFocused, nil
	case "hot":
		return TriggerHot, nil
	case "pushed":
		return TriggerPushed, nil
	default:
		return 0, fmt.Errorf("unknown trigger type %q", name)
	}
}

// Trigger maps an input condition to a target state. Identity is
// (Type, State).
type Trigger struct {
	Type  TriggerType
	State State
	// Bounds limits where the pointer counts as inside. A trigger
	// registered with the zero rect covers the whole client area.
	Bounds graphics.Rect
	// ClientArea marks a whole-client trigger. AddTrigger sets it when
	// Bounds is zero; from then on it alone decides, so explicit bounds
	// that a resize shrinks to nothing stay explicit.
	ClientArea bool
	// Anchor controls how Bounds follows resizes. Zero means AnchorDefault.
	Anchor Anchor
}

// HasExplicitBounds reports whether a registered trigger carries its own
// bounds rather than covering the whole client area.
func (t Trigger) HasExplicitBounds() bool {
	return !t.ClientArea
}

// EffectiveAnchor returns the anchor, substituting the default for zero.
func (t Trigger) EffectiveAnchor() Anchor {
	if t.Anchor == 0 {
		return AnchorDefault
	}
	return t.Anchor
}

type transitionKey struct {
	from, to State
}

type triggerKey struct {
	typ   TriggerType
	state State
}

// Registry holds the transition and trigger sets for one widget. It is
// not safe for concurrent use; like the widget it belongs to, it lives on
// the UI thread.
type Registry struct {
	transitions map[transitionKey]time.Duration
	triggers    []Trigger
	triggerIdx  map[triggerKey]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		transitions: make(map[transitionKey]time.Duration),
		triggerIdx:  make(map[triggerKey]int),
	}
}

// AddTransition registers the duration for from → to, replacing any
// earlier duration for the same pair.
func (r *Registry) AddTransition(from, to State, d time.Duration) {
	r.transitions[transitionKey{from, to}] = d
}

// FindTransition returns the registered duration for from → to.
func (r *Registry) FindTransition(from, to State) (time.Duration, bool) {
	d, ok := r.transitions[transitionKey{from, to}]
	return d, ok
}

// Transitions returns a snapshot of every registered transition, in no
// particular order.
func (r *Registry) Transitions() []Transition {
	out := make([]Transition, 0, len(r.transitions))
	for k, d := range r.transitions {
		out = append(out, Transition{From: k.from, To: k.to, Duration: d})
	}
	return out
}

// AddTrigger registers t. A trigger with the same (Type, State) is
// replaced in place and keeps its original registration position.
func (r *Registry) AddTrigger(t Trigger) {
	if t.Bounds.IsZero() {
		t.ClientArea = true
	}
	key := triggerKey{t.Type, t.State}
	if i, ok := r.triggerIdx[key]; ok {
		r.triggers[i] = t
		return
	}
	r.triggerIdx[key] = len(r.triggers)
	r.triggers = append(r.triggers, t)
}

// TriggersOfType returns the triggers of type typ in registration order.
func (r *Registry) TriggersOfType(typ TriggerType) []Trigger {
	var out []Trigger
	for _, t := range r.triggers {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// Triggers returns all triggers in registration order.
func (r *Registry) Triggers() []Trigger {
	out := make([]Trigger, len(r.triggers))
	copy(out, r.triggers)
	return out
}

// updateTriggers rewrites every trigger through fn, preserving order.
func (r *Registry) updateTriggers(fn func(Trigger) Trigger) {
	for i, t := range r.triggers {
		r.triggers[i] = fn(t)
	}
}
