package graphics

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// RasterCanvas draws into an in-memory RGBA image. It backs both the real
// widget surface and the off-screen buffers used for cross-fades.
type RasterCanvas struct {
	img   *image.RGBA
	fonts *FontManager
	state drawState
	saved []drawState
}

// drawState is what Save and Restore bracket. The clip is kept in image
// coordinates and only ever shrinks until Restore.
type drawState struct {
	origin Offset
	clip   image.Rectangle
}

// NewRasterCanvas allocates a transparent surface of the given size.
func NewRasterCanvas(size Size, fonts *FontManager) *RasterCanvas {
	w := int(math.Ceil(size.Width))
	h := int(math.Ceil(size.Height))
	return NewRasterCanvasFor(image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))), fonts)
}

// NewRasterCanvasFor wraps an existing image.
func NewRasterCanvasFor(img *image.RGBA, fonts *FontManager) *RasterCanvas {
	if fonts == nil {
		fonts = DefaultFontManager()
	}
	return &RasterCanvas{img: img, fonts: fonts, state: drawState{clip: img.Bounds()}}
}

// Image returns the backing image. The canvas keeps drawing into it.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Fonts returns the font manager used for text.
func (c *RasterCanvas) Fonts() *FontManager {
	return c.fonts
}

func (c *RasterCanvas) Save() {
	c.saved = append(c.saved, c.state)
}

// Restore without a matching Save does nothing.
func (c *RasterCanvas) Restore() {
	if n := len(c.saved); n > 0 {
		c.state = c.saved[n-1]
		c.saved = c.saved[:n-1]
	}
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	c.state.origin.X += dx
	c.state.origin.Y += dy
}

func (c *RasterCanvas) ClipRect(rect Rect) {
	c.state.clip = c.state.clip.Intersect(c.global(rect).ImageRect())
}

func (c *RasterCanvas) Clear(col Color) {
	clip := c.clipBounds()
	if clip.Empty() {
		return
	}
	draw.Draw(c.img, clip, image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	if paint.Style == PaintStyleStroke {
		c.strokeRect(rect, paint)
		return
	}
	c.fill(c.global(rect).ImageRect(), paint.Color)
}

func (c *RasterCanvas) strokeRect(rect Rect, paint Paint) {
	w := strokeWidth(paint)
	r := c.global(rect).ImageRect()
	if r.Empty() {
		return
	}
	if paint.Dash == nil {
		c.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), paint.Color)
		c.fill(image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), paint.Color)
		c.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), paint.Color)
		c.fill(image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), paint.Color)
		return
	}
	// Walk the perimeter clockwise so the dash phase is continuous.
	pos := 0.0
	for x := r.Min.X; x < r.Max.X; x++ {
		c.dot(x, r.Min.Y, w, pos, paint)
		pos++
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		c.dot(r.Max.X-w, y, w, pos, paint)
		pos++
	}
	for x := r.Max.X - 2; x >= r.Min.X; x-- {
		c.dot(x, r.Max.Y-w, w, pos, paint)
		pos++
	}
	for y := r.Max.Y - 2; y > r.Min.Y; y-- {
		c.dot(r.Min.X, y, w, pos, paint)
		pos++
	}
}

func (c *RasterCanvas) DrawLine(start, end Offset, paint Paint) {
	w := strokeWidth(paint)
	s := c.globalOffset(start)
	e := c.globalOffset(end)
	dx := e.X - s.X
	dy := e.Y - s.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		c.dot(int(s.X), int(s.Y), w, 0, paint)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(s.X + dx*t))
		y := int(math.Round(s.Y + dy*t))
		c.dot(x, y, w, float64(i), paint)
	}
}

func (c *RasterCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.Face == nil || layout.Text == "" {
		return
	}
	dst, ok := c.clippedImage()
	if !ok {
		return
	}
	p := c.globalOffset(position)
	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(layout.Style.Color.NRGBA()),
		Face: layout.Face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(p.X))),
			Y: fixed.I(int(math.Round(p.Y + layout.Ascent))),
		},
	}
	drawer.DrawString(layout.Text)
}

func (c *RasterCanvas) DrawImage(src image.Image, position Offset) {
	if src == nil {
		return
	}
	p := c.globalOffset(position)
	origin := image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
	target := src.Bounds().Sub(src.Bounds().Min).Add(origin)
	r := target.Intersect(c.clipBounds())
	if r.Empty() {
		return
	}
	sp := src.Bounds().Min.Add(r.Min.Sub(target.Min))
	draw.Draw(c.img, r, src, sp, draw.Over)
}

func (c *RasterCanvas) DrawImageRect(src image.Image, dstRect Rect) {
	if src == nil {
		return
	}
	dst, ok := c.clippedImage()
	if !ok {
		return
	}
	dr := c.global(dstRect).ImageRect()
	if dr.Empty() {
		return
	}
	draw.BiLinear.Scale(dst, dr, src, src.Bounds(), draw.Over, nil)
}

func (c *RasterCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *RasterCanvas) global(rect Rect) Rect {
	return rect.Translate(c.state.origin.X, c.state.origin.Y)
}

func (c *RasterCanvas) globalOffset(o Offset) Offset {
	return Offset{X: o.X + c.state.origin.X, Y: o.Y + c.state.origin.Y}
}

// clipBounds returns the active clip in image coordinates.
func (c *RasterCanvas) clipBounds() image.Rectangle {
	return c.state.clip
}

func (c *RasterCanvas) clippedImage() (*image.RGBA, bool) {
	clip := c.clipBounds()
	if clip.Empty() {
		return nil, false
	}
	sub, ok := c.img.SubImage(clip).(*image.RGBA)
	return sub, ok
}

func (c *RasterCanvas) fill(r image.Rectangle, col Color) {
	r = r.Intersect(c.clipBounds())
	if r.Empty() || col.Alpha() == 0 {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col.NRGBA()), image.Point{}, draw.Over)
}

func (c *RasterCanvas) dot(x, y, w int, pos float64, paint Paint) {
	if !paint.Dash.dashOn(pos) {
		return
	}
	c.fill(image.Rect(x, y, x+w, y+w), paint.Color)
}

func strokeWidth(paint Paint) int {
	w := int(math.Round(paint.StrokeWidth))
	if w < 1 {
		return 1
	}
	return w
}

// BlendImages writes the cross-fade of from and to at progress t (0 shows
// from, 1 shows to) into dst. All three images must share bounds.
func BlendImages(dst, from, to *image.RGBA, t float64) {
	t = clamp01(t)
	draw.Draw(dst, dst.Bounds(), from, from.Bounds().Min, draw.Src)
	if t == 0 {
		return
	}
	mask := image.NewUniform(color.Alpha{A: alpha01ToByte(t)})
	draw.DrawMask(dst, dst.Bounds(), to, to.Bounds().Min, mask, image.Point{}, draw.Over)
}
