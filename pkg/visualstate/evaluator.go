package visualstate

import "github.com/go-drift/statefade/pkg/graphics"

// Conditions are the input facts a trigger evaluation reads.
type Conditions struct {
	// Focused is true while the widget holds keyboard focus.
	Focused bool
	// PointerInside is true while the pointer is over the widget at all.
	PointerInside bool
	// Pointer is the pointer position in client coordinates.
	Pointer graphics.Offset
	// ButtonDown is true while the primary pointer button is held.
	ButtonDown bool
	// ClientRect is the widget's client area, used for triggers without
	// explicit bounds.
	ClientRect graphics.Rect
}

// Evaluate returns the state the registered triggers select for c,
// starting from defaultState.
//
// Triggers are checked Focused, then Hot, then Pushed, and a trigger whose
// condition holds overwrites the result. Pushed therefore beats Hot, which
// beats Focused, which beats the default. Within one type, triggers are
// visited in registration order and the last one that holds wins.
func Evaluate(reg *Registry, c Conditions, defaultState State) State {
	result := defaultState
	if reg == nil {
		return result
	}
	for _, t := range reg.triggers {
		if t.Type == TriggerFocused && c.Focused {
			result = t.State
		}
	}
	for _, t := range reg.triggers {
		if t.Type == TriggerHot && c.inside(t) {
			result = t.State
		}
	}
	for _, t := range reg.triggers {
		if t.Type == TriggerPushed && c.ButtonDown && c.inside(t) {
			result = t.State
		}
	}
	return result
}

func (c Conditions) inside(t Trigger) bool {
	if !c.PointerInside {
		return false
	}
	bounds := t.Bounds
	if !t.HasExplicitBounds() {
		bounds = c.ClientRect
	}
	return bounds.Contains(c.Pointer)
}
