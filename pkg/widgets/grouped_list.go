package widgets

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/go-drift/statefade/pkg/bufferedpaint"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/listlayout"
	"github.com/go-drift/statefade/pkg/logging"
	"github.com/go-drift/statefade/pkg/metrics"
	"github.com/go-drift/statefade/pkg/projection"
	"github.com/go-drift/statefade/pkg/stateanim"
	"github.com/go-drift/statefade/pkg/theme"
	"github.com/go-drift/statefade/pkg/visualstate"
)

// Face metrics, in pixels.
const (
	faceInset  = 3
	arrowWidth = 16
)

// GroupedListConfig collects everything a GroupedList is built from.
type GroupedListConfig[T any] struct {
	// Source is the externally owned backing collection.
	Source projection.Source[T]
	// Projection selects group/image attributes and sorting.
	Projection projection.Options
	// Layout holds the row metrics. Zero means listlayout.DefaultOptions.
	Layout listlayout.Options
	// Theme defaults to theme.DefaultLightTheme.
	Theme *theme.ThemeData
	// Fonts defaults to the shared font manager.
	Fonts *graphics.FontManager

	// Registry holds transitions and triggers. Nil gets an empty one.
	Registry *visualstate.Registry
	// DefaultState is shown when no trigger holds. Empty means Normal.
	DefaultState visualstate.State
	// Platform provides buffered animation. Nil paints directly.
	Platform bufferedpaint.Platform
	// Capabilities describes the host.
	Capabilities bufferedpaint.Capabilities
	// AnimationDisabled starts with buffered animation switched off.
	AnimationDisabled bool
	// DefaultDuration overrides stateanim.DefaultDuration when non-nil.
	// A zero duration switches every unmatched transition to a snap.
	DefaultDuration *time.Duration
	// SameItem reports whether two items are the same entry, so the
	// selection can follow its item when the source reorders. Nil
	// compares with == for comparable types and reflect.DeepEqual
	// otherwise.
	SameItem func(a, b T) bool

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// GroupedList is a selectable drop-down list whose face cross-fades
// between visual states and whose rows are grouped under headers.
//
// All methods must be called from the UI thread.
type GroupedList[T any] struct {
	// OnInvalidate runs whenever the list needs a repaint.
	OnInvalidate func()
	// OnSelectionChanged runs after the selected row index changes, by
	// Select or because a rebuild moved or removed the selected item.
	OnSelectionChanged func(index int)

	projection *projection.Projection[T]
	layout     *listlayout.Engine[T]
	animator   *stateanim.Animator
	registry   *visualstate.Registry

	defaultState visualstate.State
	selected     int
	selectedItem T
	sameItem     func(a, b T) bool
	disabled     bool
	focused      bool
	pointer      graphics.Offset
	inside       bool
	buttonDown   bool
	size         graphics.Size
	invalidated  bool
	logger       *slog.Logger
}

// NewGroupedList builds a list from cfg. It fails only when
// cfg.DefaultState is not a valid state.
func NewGroupedList[T any](cfg GroupedListConfig[T]) (*GroupedList[T], error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	def := cfg.DefaultState
	if def == "" {
		def = visualstate.Normal
	}
	reg := cfg.Registry
	if reg == nil {
		reg = visualstate.NewRegistry()
	}

	opts := []stateanim.Option{stateanim.WithLogger(logger), stateanim.WithMetrics(cfg.Metrics)}
	if cfg.DefaultDuration != nil {
		opts = append(opts, stateanim.WithDefaultDuration(*cfg.DefaultDuration))
	}
	animator, err := stateanim.New(reg, cfg.Platform, cfg.Capabilities, def, opts...)
	if err != nil {
		return nil, err
	}

	layoutOpts := cfg.Layout
	if layoutOpts == (listlayout.Options{}) {
		layoutOpts = listlayout.DefaultOptions()
	}

	l := &GroupedList[T]{
		registry:     reg,
		animator:     animator,
		defaultState: def,
		selected:     -1,
		sameItem:     cfg.SameItem,
		invalidated:  true,
		logger:       logger,
	}
	if l.sameItem == nil {
		l.sameItem = equalItems[T]
	}
	l.projection = projection.New(cfg.Source, cfg.Projection,
		projection.WithLogger(logger), projection.WithMetrics(cfg.Metrics))
	l.projection.OnChanged = l.itemsChanged
	l.layout = listlayout.New(l.projection, cfg.Theme, cfg.Fonts, layoutOpts)
	l.layout.SetLogger(logger)

	animator.OnInvalidate = l.invalidate
	animator.OnPaintVisualState = l.paintFace
	if cfg.AnimationDisabled {
		animator.SetEnabled(false)
	}
	return l, nil
}

// Projection returns the grouped view of the source.
func (l *GroupedList[T]) Projection() *projection.Projection[T] { return l.projection }

// Layout returns the row layout engine.
func (l *GroupedList[T]) Layout() *listlayout.Engine[T] { return l.layout }

// Animator returns the face animator.
func (l *GroupedList[T]) Animator() *stateanim.Animator { return l.animator }

// State returns the visual state the face is heading to.
func (l *GroupedList[T]) State() visualstate.State { return l.animator.State() }

// Attach is called once the native surface exists.
func (l *GroupedList[T]) Attach(size graphics.Size) {
	l.size = size
	l.animator.SurfaceCreated(size)
	l.invalidate()
}

// Detach is called when the native surface is destroyed.
func (l *GroupedList[T]) Detach() {
	l.animator.SurfaceDestroyed()
}

// Dispose releases the animation context and stops following the source.
func (l *GroupedList[T]) Dispose() {
	l.animator.Dispose()
	l.projection.Close()
}

// Resize records a new face size.
func (l *GroupedList[T]) Resize(size graphics.Size) {
	if size == l.size {
		return
	}
	l.animator.Resize(size)
	l.size = size
	l.reevaluate()
	l.invalidate()
}

// Size returns the face size.
func (l *GroupedList[T]) Size() graphics.Size { return l.size }

// PointerEnter is called when the pointer moves onto the face.
func (l *GroupedList[T]) PointerEnter(pos graphics.Offset) {
	l.inside = true
	l.pointer = pos
	l.reevaluate()
}

// PointerMove is called for pointer motion over the face.
func (l *GroupedList[T]) PointerMove(pos graphics.Offset) {
	l.inside = true
	l.pointer = pos
	l.reevaluate()
}

// PointerLeave is called when the pointer leaves the face.
func (l *GroupedList[T]) PointerLeave() {
	l.inside = false
	l.reevaluate()
}

// ButtonDown is called when the primary button is pressed over the face.
func (l *GroupedList[T]) ButtonDown(pos graphics.Offset) {
	l.buttonDown = true
	l.pointer = pos
	l.reevaluate()
}

// ButtonUp is called when the primary button is released.
func (l *GroupedList[T]) ButtonUp(pos graphics.Offset) {
	l.buttonDown = false
	l.pointer = pos
	l.reevaluate()
}

// FocusGained is called when the list receives keyboard focus.
func (l *GroupedList[T]) FocusGained() {
	l.focused = true
	l.reevaluate()
	l.invalidate()
}

// FocusLost is called when the list loses keyboard focus.
func (l *GroupedList[T]) FocusLost() {
	l.focused = false
	l.reevaluate()
	l.invalidate()
}

// Focused reports whether the list holds keyboard focus.
func (l *GroupedList[T]) Focused() bool { return l.focused }

// SetDisabled enables or disables the list. A disabled list shows the
// Disabled state regardless of triggers.
func (l *GroupedList[T]) SetDisabled(disabled bool) {
	if l.disabled == disabled {
		return
	}
	l.disabled = disabled
	l.reevaluate()
	l.invalidate()
}

// Disabled reports whether the list is disabled.
func (l *GroupedList[T]) Disabled() bool { return l.disabled }

func (l *GroupedList[T]) conditions() visualstate.Conditions {
	return visualstate.Conditions{
		Focused:       l.focused,
		PointerInside: l.inside,
		Pointer:       l.pointer,
		ButtonDown:    l.buttonDown,
		ClientRect:    graphics.RectFromSize(l.size),
	}
}

func (l *GroupedList[T]) reevaluate() {
	if l.disabled {
		l.animator.SetState(visualstate.Disabled)
		return
	}
	l.animator.SetState(visualstate.Evaluate(l.registry, l.conditions(), l.defaultState))
}

// Select makes row index the selection; -1 clears it. Out-of-range
// indexes are ignored.
func (l *GroupedList[T]) Select(index int) {
	if index < -1 || index >= l.projection.Len() || index == l.selected {
		return
	}
	l.setSelected(index)
	l.invalidate()
	l.selectionChanged(index)
}

func (l *GroupedList[T]) setSelected(index int) {
	var zero T
	l.selected = index
	l.selectedItem = zero
	if index >= 0 {
		l.selectedItem = l.projection.At(index).Item
	}
}

func (l *GroupedList[T]) selectionChanged(index int) {
	if l.OnSelectionChanged != nil {
		l.OnSelectionChanged(index)
	}
}

// Selected returns the selected row and its item. ok is false when
// nothing is selected.
func (l *GroupedList[T]) Selected() (index int, item T, ok bool) {
	if l.selected < 0 || l.selected >= l.projection.Len() {
		return -1, item, false
	}
	return l.selected, l.projection.At(l.selected).Item, true
}

// itemsChanged keeps the selection on the same item across a rebuild.
// It clears the selection when the item is gone.
func (l *GroupedList[T]) itemsChanged() {
	if l.selected < 0 {
		l.invalidate()
		return
	}
	saved := l.selectedItem
	index := l.projection.Index(func(it T) bool { return l.sameItem(it, saved) })
	moved := index != l.selected
	l.setSelected(index)
	l.invalidate()
	if moved {
		l.selectionChanged(index)
	}
}

func equalItems[T any](a, b T) bool {
	x, y := any(a), any(b)
	if t := reflect.TypeOf(x); t != nil && t.Comparable() && t == reflect.TypeOf(y) {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}

// Invalidated reports whether a repaint is pending.
func (l *GroupedList[T]) Invalidated() bool { return l.invalidated }

func (l *GroupedList[T]) invalidate() {
	l.invalidated = true
	if l.OnInvalidate != nil {
		l.OnInvalidate()
	}
}

// Paint renders the face into c through the animator.
func (l *GroupedList[T]) Paint(c graphics.Canvas) {
	l.invalidated = false
	l.animator.Paint(c)
}

// paintFace draws one visual state of the face: the state background,
// a border, the drop arrow and the selected item in the edit slot.
func (l *GroupedList[T]) paintFace(s visualstate.State, c graphics.Canvas) {
	th := l.layout.Theme()
	bounds := graphics.RectFromSize(c.Size())
	c.DrawRect(bounds, graphics.FillPaint(th.FaceColor(s)))
	c.DrawRect(bounds, graphics.StrokePaint(th.ColorScheme.Border))

	arrow := graphics.Rect{Left: bounds.Right - arrowWidth, Top: bounds.Top, Right: bounds.Right, Bottom: bounds.Bottom}
	l.paintArrow(c, arrow, th)

	index, _, ok := l.Selected()
	if !ok {
		return
	}
	slot := bounds.Deflate(faceInset, faceInset, arrowWidth+faceInset, faceInset)
	l.layout.Draw(c, index, slot, listlayout.ItemState{
		Focused:  l.focused,
		Disabled: l.disabled,
		EditSlot: true,
	})
}

func (l *GroupedList[T]) paintArrow(c graphics.Canvas, r graphics.Rect, th *theme.ThemeData) {
	color := th.ColorScheme.OnBackground
	if l.disabled {
		color = th.ColorScheme.OnDisabled
	}
	center := r.Center()
	paint := graphics.StrokePaint(color)
	for i := 0; i < 4; i++ {
		y := center.Y - 2 + float64(i)
		c.DrawLine(graphics.Offset{X: center.X - 4 + float64(i), Y: y}, graphics.Offset{X: center.X + 4 - float64(i), Y: y}, paint)
	}
}

// ListHeight returns the total height of all rows.
func (l *GroupedList[T]) ListHeight() float64 {
	total := 0.0
	for i := range l.projection.Len() {
		h, _ := l.layout.Measure(i)
		total += h
	}
	return total
}

// ListWidth returns the widest row's minimum width.
func (l *GroupedList[T]) ListWidth() float64 {
	widest := 0.0
	for i := range l.projection.Len() {
		_, w := l.layout.Measure(i)
		widest = max(widest, w)
	}
	return widest
}

// PaintList draws the open drop-down rows stacked from the top of c and
// returns the height used.
func (l *GroupedList[T]) PaintList(c graphics.Canvas, width float64) float64 {
	y := 0.0
	for i := range l.projection.Len() {
		h, _ := l.layout.Measure(i)
		selected := i == l.selected
		l.layout.Draw(c, i, graphics.RectFromLTWH(0, y, width, h), listlayout.ItemState{
			Selected: selected,
			Focused:  selected && l.focused,
			Disabled: l.disabled,
		})
		y += h
	}
	return y
}

// RowAt returns the row under list coordinate y, or -1.
func (l *GroupedList[T]) RowAt(y float64) int {
	if y < 0 {
		return -1
	}
	top := 0.0
	for i := range l.projection.Len() {
		h, _ := l.layout.Measure(i)
		if y < top+h {
			return i
		}
		top += h
	}
	return -1
}
