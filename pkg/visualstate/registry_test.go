package visualstate

import (
	"testing"
	"time"

	"github.com/go-drift/statefade/pkg/errors"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTransition_SamePairReplacesDuration(t *testing.T) {
	reg := NewRegistry()
	reg.AddTransition(Normal, Hot, 100*time.Millisecond)
	reg.AddTransition(Normal, Hot, 300*time.Millisecond)

	require.Len(t, reg.Transitions(), 1)
	d, ok := reg.FindTransition(Normal, Hot)
	require.True(t, ok)
	assert.Equal(t, 300*time.Millisecond, d)
}

func TestFindTransition_IsDirectional(t *testing.T) {
	reg := NewRegistry()
	reg.AddTransition(Normal, Hot, 250*time.Millisecond)
	reg.AddTransition(Hot, Normal, 350*time.Millisecond)

	d, ok := reg.FindTransition(Normal, Hot)
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)

	d, ok = reg.FindTransition(Hot, Normal)
	require.True(t, ok)
	assert.Equal(t, 350*time.Millisecond, d)

	_, ok = reg.FindTransition(Hot, Pressed)
	assert.False(t, ok)
}

func TestAddTrigger_SameKeyReplacesInPlace(t *testing.T) {
	reg := NewRegistry()
	reg.AddTrigger(Trigger{Type: TriggerHot, State: Hot})
	reg.AddTrigger(Trigger{Type: TriggerFocused, State: Focused})
	reg.AddTrigger(Trigger{Type: TriggerHot, State: Hot, Bounds: graphics.RectFromLTWH(0, 0, 5, 5)})

	all := reg.Triggers()
	require.Len(t, all, 2)
	assert.Equal(t, TriggerHot, all[0].Type, "replacement keeps original slot")
	assert.Equal(t, graphics.RectFromLTWH(0, 0, 5, 5), all[0].Bounds)
}

func TestAddTrigger_DifferentStateIsDistinct(t *testing.T) {
	reg := NewRegistry()
	reg.AddTrigger(Trigger{Type: TriggerHot, State: Hot})
	reg.AddTrigger(Trigger{Type: TriggerHot, State: Pressed})

	assert.Len(t, reg.TriggersOfType(TriggerHot), 2)
	assert.Empty(t, reg.TriggersOfType(TriggerPushed))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("test", Normal))

	err := Validate("test", "")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindConfig))

	assert.Error(t, Validate("test", "   "))
}

func TestParseState(t *testing.T) {
	s, err := ParseState(" Hot ")
	require.NoError(t, err)
	assert.Equal(t, Hot, s)

	_, err = ParseState("")
	assert.Error(t, err)
}

func TestParseTriggerType(t *testing.T) {
	for _, typ := range []TriggerType{TriggerFocused, TriggerHot, TriggerPushed} {
		got, err := ParseTriggerType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseTriggerType("hovered")
	assert.Error(t, err)
}
