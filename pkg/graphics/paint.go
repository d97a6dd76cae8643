package graphics

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// DashPattern defines a stroke dash pattern as alternating on/off lengths.
//
// The pattern repeats along the stroke. For example, Intervals of [1, 1]
// draws a dotted line, one pixel on and one off.
type DashPattern struct {
	Intervals []float64 // Alternating on/off lengths; must have even count >= 2, all > 0
}

// DottedPattern is the one-on one-off pattern used for focus rectangles.
var DottedPattern = &DashPattern{Intervals: []float64{1, 1}}

// Paint describes how to draw a shape on the canvas.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64      // Width of stroke in pixels
	Dash        *DashPattern // Dash pattern; nil = solid stroke
}

// DefaultPaint returns a basic opaque white fill paint.
func DefaultPaint() Paint {
	return Paint{
		Color:       ColorWhite,
		Style:       PaintStyleFill,
		StrokeWidth: 1,
	}
}

// FillPaint returns a solid fill in the given color.
func FillPaint(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleFill, StrokeWidth: 1}
}

// StrokePaint returns a one-pixel solid outline in the given color.
func StrokePaint(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleStroke, StrokeWidth: 1}
}

// dashOn reports whether position pos along a stroke falls in an "on" run.
func (d *DashPattern) dashOn(pos float64) bool {
	if d == nil || len(d.Intervals) < 2 {
		return true
	}
	total := 0.0
	for _, v := range d.Intervals {
		total += v
	}
	if total <= 0 {
		return true
	}
	for pos >= total {
		pos -= total
	}
	for i, v := range d.Intervals {
		if pos < v {
			return i%2 == 0
		}
		pos -= v
	}
	return true
}
