package graphics

import (
	"image"
	"math"
)

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
//
// The zero Rect is used as a sentinel meaning "no explicit bounds" by
// callers that fall back to a full client area.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromSize returns a rect at the origin with the given size.
func RectFromSize(size Size) Rect {
	return RectFromLTWH(0, 0, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// IsZero reports whether every coordinate is zero.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Contains reports whether p lies inside r. Left and top edges are
// inclusive, right and bottom exclusive.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Intersect returns the overlap of r and other, or the zero Rect when
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Deflate shrinks the rect by the given amounts on each edge.
func (r Rect) Deflate(left, top, right, bottom float64) Rect {
	return Rect{
		Left:   r.Left + left,
		Top:    r.Top + top,
		Right:  r.Right - right,
		Bottom: r.Bottom - bottom,
	}
}

// TopHalf returns the upper half of the rect.
func (r Rect) TopHalf() Rect {
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Top + r.Height()/2}
}

// BottomHalf returns the lower half of the rect.
func (r Rect) BottomHalf() Rect {
	return Rect{Left: r.Left, Top: r.Top + r.Height()/2, Right: r.Right, Bottom: r.Bottom}
}

// ImageRect rounds the rect outwards to integer pixel coordinates.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)),
		int(math.Ceil(r.Bottom)),
	)
}

// ApproxEqual reports whether every edge of r is within 1e-4 of the
// matching edge of other. Anchored trigger bounds are compared this way.
func (r Rect) ApproxEqual(other Rect) bool {
	const tolerance = 1e-4
	near := func(a, b float64) bool { return math.Abs(a-b) <= tolerance }
	return near(r.Left, other.Left) && near(r.Top, other.Top) &&
		near(r.Right, other.Right) && near(r.Bottom, other.Bottom)
}
