// Package listlayout measures and draws the rows of a grouped list.
//
// Group-start rows are twice the height of a plain row: the top half
// carries the bold group header, the bottom half (the content band) the
// item itself. Items inside a non-empty group are indented. The engine
// never touches the data; everything comes from a projection.
package listlayout

import (
	"log/slog"
	"math"

	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/logging"
	"github.com/go-drift/statefade/pkg/projection"
	"github.com/go-drift/statefade/pkg/theme"
)

// Default metrics, in pixels.
const (
	DefaultGroupIndent = 10
	DefaultIconMargin  = 4
	DefaultIconSize    = 16
	DefaultPadding     = 2
)

// Options holds the fixed row metrics.
type Options struct {
	GroupIndent float64
	IconMargin  float64
	IconSize    float64
	Padding     float64
	// EditSlotIcons draws icons in the current-selection slot too.
	EditSlotIcons bool
}

// DefaultOptions returns the default metrics with edit-slot icons shown.
func DefaultOptions() Options {
	return Options{
		GroupIndent:   DefaultGroupIndent,
		IconMargin:    DefaultIconMargin,
		IconSize:      DefaultIconSize,
		Padding:       DefaultPadding,
		EditSlotIcons: true,
	}
}

// ItemState carries the per-row drawing flags.
type ItemState struct {
	Selected bool
	Focused  bool
	Disabled bool
	// EditSlot marks the always-visible current-selection slot, which
	// has no header and no group indent.
	EditSlot bool
}

// Engine measures and draws rows of one projection.
type Engine[T any] struct {
	source *projection.Projection[T]
	theme  *theme.ThemeData
	fonts  *graphics.FontManager
	opts   Options
	logger *slog.Logger
}

// New returns an engine drawing rows of p. Nil theme and fonts fall back
// to the light theme and the shared font manager.
func New[T any](p *projection.Projection[T], th *theme.ThemeData, fonts *graphics.FontManager, opts Options) *Engine[T] {
	if th == nil {
		th = theme.DefaultLightTheme()
	}
	if fonts == nil {
		fonts = graphics.DefaultFontManager()
	}
	return &Engine[T]{source: p, theme: th, fonts: fonts, opts: opts, logger: logging.NewNop()}
}

// SetLogger sets the logger for text layout failures.
func (e *Engine[T]) SetLogger(l *slog.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Theme returns the theme rows are drawn with.
func (e *Engine[T]) Theme() *theme.ThemeData {
	return e.theme
}

// SetTheme replaces the theme. Nil is ignored.
func (e *Engine[T]) SetTheme(th *theme.ThemeData) {
	if th != nil {
		e.theme = th
	}
}

// Options returns the row metrics.
func (e *Engine[T]) Options() Options {
	return e.opts
}

// LineHeight is the height of a row without a header.
func (e *Engine[T]) LineHeight() float64 {
	text := e.fonts.LineHeight(e.theme.TextStyle)
	return math.Max(text, e.opts.IconSize) + 2*e.opts.Padding
}

// Measure returns the height and minimum width of row index. Group-start
// rows are two lines high and at least as wide as their header text.
func (e *Engine[T]) Measure(index int) (height, minWidth float64) {
	if index < 0 || index >= e.source.Len() {
		return 0, 0
	}
	entry := e.source.At(index)
	height = e.LineHeight()

	minWidth = e.opts.Padding*2 + e.textWidth(entry.Text, e.theme.TextStyle)
	if entry.Group != "" {
		minWidth += e.opts.GroupIndent
	}
	if e.source.Image(entry.Item) != nil {
		minWidth += e.opts.IconSize + e.opts.IconMargin
	}

	if start, group := e.source.IsGroupStart(index); start {
		height *= 2
		header := e.opts.Padding*2 + e.textWidth(group, e.theme.HeaderStyle())
		minWidth = math.Max(minWidth, header)
	}
	return height, minWidth
}

// Draw paints row index into bounds.
func (e *Engine[T]) Draw(c graphics.Canvas, index int, bounds graphics.Rect, st ItemState) {
	if index < 0 || index >= e.source.Len() || bounds.IsEmpty() {
		return
	}
	entry := e.source.At(index)
	start, group := e.source.IsGroupStart(index)
	header := start && !st.EditSlot
	colors := e.theme.ColorScheme

	content := bounds
	if header {
		content = bounds.BottomHalf()
	}

	// The edit slot sits on the animated face, so it leaves the face
	// colour showing. A selected header keeps a plain header band even
	// when disabled.
	switch {
	case st.EditSlot:
	case header && st.Selected:
		c.DrawRect(bounds, graphics.FillPaint(colors.Selection))
		c.DrawRect(bounds.TopHalf(), graphics.FillPaint(colors.Background))
	case st.Disabled:
		c.DrawRect(bounds, graphics.FillPaint(colors.DisabledBackground))
	case st.Selected:
		c.DrawRect(bounds, graphics.FillPaint(colors.Selection))
	default:
		c.DrawRect(bounds, graphics.FillPaint(colors.Background))
	}

	if header {
		e.drawText(c, group, e.theme.HeaderStyle(), bounds.TopHalf().Deflate(e.opts.Padding, 0, e.opts.Padding, 0))
	}

	x := content.Left + e.opts.Padding
	if group != "" && !st.EditSlot {
		x += e.opts.GroupIndent
	}
	if !st.EditSlot || e.opts.EditSlotIcons {
		if img := e.source.Image(entry.Item); img != nil {
			size := e.opts.IconSize
			top := content.Top + (content.Height()-size)/2
			c.DrawImageRect(img, graphics.RectFromLTWH(x, top, size, size))
			x += size + e.opts.IconMargin
		}
	}

	fg := colors.OnBackground
	switch {
	case st.Disabled:
		fg = colors.OnDisabled
	case st.Selected:
		fg = colors.OnSelection
	}
	textBounds := graphics.Rect{Left: x, Top: content.Top, Right: content.Right - e.opts.Padding, Bottom: content.Bottom}
	e.drawText(c, entry.Text, e.theme.TextStyle.WithColor(fg), textBounds)

	if st.Focused {
		focus := graphics.StrokePaint(colors.Focus)
		focus.Dash = graphics.DottedPattern
		c.DrawRect(content, focus)
	}
}

// drawText draws one ellipsized line vertically centred in bounds.
func (e *Engine[T]) drawText(c graphics.Canvas, text string, style graphics.TextStyle, bounds graphics.Rect) {
	if text == "" || bounds.Width() <= 0 || bounds.Height() <= 0 {
		return
	}
	layout, err := graphics.LayoutTextEllipsized(text, style, e.fonts, bounds.Width())
	if err != nil {
		e.logger.Debug("text layout failed", "text", text, "error", err)
		return
	}
	y := bounds.Top + (bounds.Height()-layout.Size.Height)/2
	c.Save()
	c.ClipRect(bounds)
	c.DrawText(layout, graphics.Offset{X: bounds.Left, Y: y})
	c.Restore()
}

func (e *Engine[T]) textWidth(text string, style graphics.TextStyle) float64 {
	if text == "" {
		return 0
	}
	layout, err := graphics.LayoutText(text, style, e.fonts)
	if err != nil {
		return 0
	}
	return layout.Size.Width
}
