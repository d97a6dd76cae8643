package visualstate

import (
	"testing"

	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/stretchr/testify/assert"
)

func standardRegistry() *Registry {
	reg := NewRegistry()
	// Registered in reverse priority order on purpose: priority comes from
	// the evaluation order, not the registration order.
	reg.AddTrigger(Trigger{Type: TriggerPushed, State: Pressed})
	reg.AddTrigger(Trigger{Type: TriggerHot, State: Hot})
	reg.AddTrigger(Trigger{Type: TriggerFocused, State: Focused})
	return reg
}

func TestEvaluate_Priority(t *testing.T) {
	client := graphics.RectFromLTWH(0, 0, 100, 20)
	inside := graphics.Offset{X: 10, Y: 10}
	outside := graphics.Offset{X: 200, Y: 10}

	tests := []struct {
		name string
		c    Conditions
		want State
	}{
		{"nothing holds", Conditions{ClientRect: client}, Normal},
		{"focus only", Conditions{ClientRect: client, Focused: true}, Focused},
		{"hot beats focus", Conditions{ClientRect: client, Focused: true, PointerInside: true, Pointer: inside}, Hot},
		{"pushed beats hot and focus", Conditions{ClientRect: client, Focused: true, PointerInside: true, Pointer: inside, ButtonDown: true}, Pressed},
		{"button down outside is not pushed", Conditions{ClientRect: client, Focused: true, PointerInside: true, Pointer: outside, ButtonDown: true}, Focused},
		{"pointer left widget", Conditions{ClientRect: client, PointerInside: false, Pointer: inside, ButtonDown: true}, Normal},
	}
	reg := standardRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(reg, tt.c, Normal))
		})
	}
}

func TestEvaluate_FocusedIgnoresBounds(t *testing.T) {
	reg := NewRegistry()
	reg.AddTrigger(Trigger{Type: TriggerFocused, State: Focused, Bounds: graphics.RectFromLTWH(0, 0, 1, 1)})

	got := Evaluate(reg, Conditions{Focused: true, ClientRect: graphics.RectFromLTWH(0, 0, 100, 20)}, Normal)
	assert.Equal(t, Focused, got)
}

func TestEvaluate_ExplicitBoundsLimitHot(t *testing.T) {
	reg := NewRegistry()
	reg.AddTrigger(Trigger{Type: TriggerHot, State: Hot, Bounds: graphics.RectFromLTWH(80, 0, 20, 20)})
	client := graphics.RectFromLTWH(0, 0, 100, 20)

	assert.Equal(t, Normal, Evaluate(reg, Conditions{ClientRect: client, PointerInside: true, Pointer: graphics.Offset{X: 10, Y: 5}}, Normal))
	assert.Equal(t, Hot, Evaluate(reg, Conditions{ClientRect: client, PointerInside: true, Pointer: graphics.Offset{X: 90, Y: 5}}, Normal))
}

func TestEvaluate_LastTrueWinsWithinType(t *testing.T) {
	reg := NewRegistry()
	reg.AddTrigger(Trigger{Type: TriggerHot, State: "hot-left", Bounds: graphics.RectFromLTWH(0, 0, 60, 20)})
	reg.AddTrigger(Trigger{Type: TriggerHot, State: "hot-right", Bounds: graphics.RectFromLTWH(40, 0, 60, 20)})
	client := graphics.RectFromLTWH(0, 0, 100, 20)

	overlap := Conditions{ClientRect: client, PointerInside: true, Pointer: graphics.Offset{X: 50, Y: 5}}
	assert.Equal(t, State("hot-right"), Evaluate(reg, overlap, Normal))

	leftOnly := Conditions{ClientRect: client, PointerInside: true, Pointer: graphics.Offset{X: 10, Y: 5}}
	assert.Equal(t, State("hot-left"), Evaluate(reg, leftOnly, Normal))
}

func TestEvaluate_NilRegistryReturnsDefault(t *testing.T) {
	assert.Equal(t, Disabled, Evaluate(nil, Conditions{Focused: true}, Disabled))
}
