package listlayout

import (
	"image"
	"testing"

	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/projection"
	drifttest "github.com/go-drift/statefade/pkg/testing"
	"github.com/go-drift/statefade/pkg/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string
	Group string
	Icon  image.Image
}

type fixture struct {
	engine *Engine[row]
	theme  *theme.ThemeData
}

func newFixture(t *testing.T, opts Options, rows ...row) fixture {
	t.Helper()
	if len(rows) == 0 {
		icon := image.NewRGBA(image.Rect(0, 0, 8, 8))
		rows = []row{
			{Name: "A"},
			{Name: "B", Group: "X", Icon: icon},
			{Name: "C", Group: "X"},
			{Name: "D", Group: "Y"},
		}
	}
	fonts, err := graphics.NewFontManager()
	require.NoError(t, err)
	src := projection.NewListSource(rows, func(r row) string { return r.Name })
	p := projection.New[row](src, projection.Options{AutoSort: true, GroupAttribute: "Group", ImageAttribute: "Icon"})
	th := theme.DefaultLightTheme()
	return fixture{engine: New(p, th, fonts, opts), theme: th}
}

func TestMeasure_GroupStartIsTwoLines(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	line := f.engine.LineHeight()
	require.Greater(t, line, 0.0)

	h, _ := f.engine.Measure(0)
	assert.Equal(t, line, h)
	h, _ = f.engine.Measure(1)
	assert.Equal(t, 2*line, h)
	h, _ = f.engine.Measure(2)
	assert.Equal(t, line, h)
	h, _ = f.engine.Measure(3)
	assert.Equal(t, 2*line, h)

	h, w := f.engine.Measure(9)
	assert.Zero(t, h)
	assert.Zero(t, w)
}

func TestMeasure_WidthFitsHeader(t *testing.T) {
	f := newFixture(t, DefaultOptions(),
		row{Name: "x", Group: "A considerably longer group header"},
	)
	_, w := f.engine.Measure(0)
	header, err := graphics.LayoutText("A considerably longer group header", f.theme.HeaderStyle(), f.engine.fonts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, w, header.Size.Width)
}

func TestMeasure_IconAndIndentWiden(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	_, plain := f.engine.Measure(0)
	_, withIcon := f.engine.Measure(1)
	_, indented := f.engine.Measure(2)
	assert.Greater(t, withIcon, indented)
	assert.Greater(t, indented, plain)
}

func TestDraw_SelectedGroupHeader(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 200, Height: 40})
	bounds := graphics.RectFromLTWH(0, 0, 200, 40)
	colors := f.theme.ColorScheme

	f.engine.Draw(c, 1, bounds, ItemState{Selected: true, Focused: true})

	rects := c.OpsNamed("drawRect")
	require.Len(t, rects, 3, c.String())
	assert.Equal(t, bounds, rects[0].Rect())
	assert.Equal(t, colors.Selection, rects[0].Color())
	assert.Equal(t, bounds.TopHalf(), rects[1].Rect(), "header band repainted plain")
	assert.Equal(t, colors.Background, rects[1].Color())

	focus := rects[2]
	assert.Equal(t, bounds.BottomHalf(), focus.Rect(), "focus excludes the header band")
	assert.Equal(t, true, focus.Params["dashed"])
	assert.Equal(t, "stroke", focus.Params["style"])

	texts := c.OpsNamed("drawText")
	require.Len(t, texts, 2)
	assert.Equal(t, "X", texts[0].Params["text"])
	assert.Equal(t, "bold", texts[0].Params["weight"])
	assert.Equal(t, colors.Header, texts[0].Color())
	assert.Less(t, texts[0].Params["y"].(float64), 20.0)

	assert.Equal(t, "B", texts[1].Params["text"])
	assert.Equal(t, colors.OnSelection, texts[1].Color())
	assert.GreaterOrEqual(t, texts[1].Params["y"].(float64), 20.0)

	icons := c.OpsNamed("drawImageRect")
	require.Len(t, icons, 1)
	indent := float64(DefaultPadding + DefaultGroupIndent)
	assert.Equal(t, graphics.RectFromLTWH(indent, 22, DefaultIconSize, DefaultIconSize), icons[0].Rect())
	assert.Equal(t, indent+DefaultIconSize+DefaultIconMargin, texts[1].Params["x"])
}

func TestDraw_UnselectedRowUsesPlainBackground(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 200, Height: 20})
	bounds := graphics.RectFromLTWH(0, 0, 200, 20)

	f.engine.Draw(c, 0, bounds, ItemState{})

	rects := c.OpsNamed("drawRect")
	require.Len(t, rects, 1)
	assert.Equal(t, f.theme.ColorScheme.Background, rects[0].Color())

	texts := c.OpsNamed("drawText")
	require.Len(t, texts, 1)
	assert.Equal(t, "A", texts[0].Params["text"])
	assert.Equal(t, float64(DefaultPadding), texts[0].Params["x"], "ungrouped rows are not indented")
	assert.Equal(t, f.theme.ColorScheme.OnBackground, texts[0].Color())
	assert.Empty(t, c.OpsNamed("drawImageRect"))
}

func TestDraw_DisabledRow(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 200, Height: 20})

	f.engine.Draw(c, 2, graphics.RectFromLTWH(0, 0, 200, 20), ItemState{Disabled: true, Selected: true})

	rects := c.OpsNamed("drawRect")
	require.Len(t, rects, 1)
	assert.Equal(t, f.theme.ColorScheme.DisabledBackground, rects[0].Color())
	texts := c.OpsNamed("drawText")
	require.Len(t, texts, 1)
	assert.Equal(t, f.theme.ColorScheme.OnDisabled, texts[0].Color())
	assert.Equal(t, float64(DefaultPadding+DefaultGroupIndent), texts[0].Params["x"])
}

func TestDraw_EditSlotHasNoHeaderOrIndent(t *testing.T) {
	opts := DefaultOptions()
	opts.EditSlotIcons = false
	f := newFixture(t, opts)
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 200, Height: 20})
	bounds := graphics.RectFromLTWH(0, 0, 200, 20)

	f.engine.Draw(c, 1, bounds, ItemState{EditSlot: true, Focused: true})

	assert.Equal(t, []string{"B"}, c.Texts())
	assert.Empty(t, c.OpsNamed("drawImageRect"))
	texts := c.OpsNamed("drawText")
	assert.Equal(t, float64(DefaultPadding), texts[0].Params["x"])

	rects := c.OpsNamed("drawRect")
	require.Len(t, rects, 1, "the slot paints no background of its own")
	assert.Equal(t, "stroke", rects[0].Params["style"])
	assert.Equal(t, bounds, rects[0].Rect(), "focus covers the whole slot")
}

func TestDraw_DisabledSelectedHeaderKeepsPlainBand(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 200, Height: 40})
	bounds := graphics.RectFromLTWH(0, 0, 200, 40)

	f.engine.Draw(c, 1, bounds, ItemState{Disabled: true, Selected: true})

	colors := f.theme.ColorScheme
	rects := c.OpsNamed("drawRect")
	require.Len(t, rects, 2)
	assert.Equal(t, colors.Selection, rects[0].Color())
	assert.Equal(t, bounds, rects[0].Rect())
	assert.Equal(t, colors.Background, rects[1].Color())
	assert.Equal(t, bounds.TopHalf(), rects[1].Rect())

	texts := c.OpsNamed("drawText")
	require.Len(t, texts, 2)
	assert.Equal(t, colors.OnDisabled, texts[1].Color())
}

func TestDraw_LongTextIsEllipsized(t *testing.T) {
	f := newFixture(t, DefaultOptions(), row{Name: "an item label far too long to fit in a narrow row"})
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 60, Height: 20})

	f.engine.Draw(c, 0, graphics.RectFromLTWH(0, 0, 60, 20), ItemState{})

	texts := c.OpsNamed("drawText")
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0].Params["text"], "…")
	assert.LessOrEqual(t, texts[0].Params["width"].(float64), 60.0-2*DefaultPadding)
}

func TestDraw_IgnoresOutOfRange(t *testing.T) {
	f := newFixture(t, DefaultOptions())
	c := drifttest.NewRecordingCanvas(graphics.Size{Width: 10, Height: 10})
	f.engine.Draw(c, 7, graphics.RectFromLTWH(0, 0, 10, 10), ItemState{})
	f.engine.Draw(c, 0, graphics.Rect{}, ItemState{})
	assert.Empty(t, c.Ops())
}
