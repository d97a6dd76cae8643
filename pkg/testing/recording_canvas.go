package testing

import (
	"fmt"
	"image"
	"math"

	"github.com/go-drift/statefade/pkg/graphics"
)

// DisplayOp represents a recorded canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Rect returns the "rect" parameter, or the zero rect.
func (d DisplayOp) Rect() graphics.Rect {
	r, _ := d.Params["rect"].(graphics.Rect)
	return r
}

// Color returns the "color" parameter, or zero.
func (d DisplayOp) Color() graphics.Color {
	c, _ := d.Params["color"].(graphics.Color)
	return c
}

// RecordingCanvas implements graphics.Canvas and records every call as a
// DisplayOp. Positions are recorded in the caller's coordinates; the
// current translation is recorded separately by "translate" ops.
type RecordingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewRecordingCanvas returns an empty recording canvas of the given size.
func NewRecordingCanvas(size graphics.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

// Ops returns all recorded operations in call order.
func (c *RecordingCanvas) Ops() []DisplayOp {
	return c.ops
}

// OpsNamed returns the recorded operations whose Op equals name.
func (c *RecordingCanvas) OpsNamed(name string) []DisplayOp {
	var out []DisplayOp
	for _, op := range c.ops {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings passed to DrawText, in order.
func (c *RecordingCanvas) Texts() []string {
	var out []string
	for _, op := range c.OpsNamed("drawText") {
		out = append(out, op.Params["text"].(string))
	}
	return out
}

// Reset discards recorded operations.
func (c *RecordingCanvas) Reset() {
	c.ops = c.ops[:0]
}

func (c *RecordingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *RecordingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: params("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *RecordingCanvas) ClipRect(rect graphics.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: params("rect", rect),
	})
}

func (c *RecordingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: params("color", color),
	})
}

func (c *RecordingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawRect",
		Params: params(
			"rect", rect,
			"color", paint.Color,
			"style", paint.Style.String(),
			"dashed", paint.Dash != nil,
		),
	})
}

func (c *RecordingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: params(
			"x1", round2(start.X), "y1", round2(start.Y),
			"x2", round2(end.X), "y2", round2(end.Y),
			"color", paint.Color,
		),
	})
}

func (c *RecordingCanvas) DrawText(layout *graphics.TextLayout, position graphics.Offset) {
	p := params("x", round2(position.X), "y", round2(position.Y))
	if layout != nil {
		p["text"] = layout.Text
		p["color"] = layout.Style.Color
		p["weight"] = layout.Style.FontWeight.String()
		p["width"] = round2(layout.Size.Width)
		p["height"] = round2(layout.Size.Height)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawText", Params: p})
}

func (c *RecordingCanvas) DrawImage(img image.Image, position graphics.Offset) {
	p := params("x", round2(position.X), "y", round2(position.Y))
	if img != nil {
		p["bounds"] = img.Bounds()
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawImage", Params: p})
}

func (c *RecordingCanvas) DrawImageRect(_ image.Image, dstRect graphics.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawImageRect",
		Params: params("rect", dstRect),
	})
}

func (c *RecordingCanvas) Size() graphics.Size {
	return c.size
}

// String renders the op list one per line, handy in failure messages.
func (c *RecordingCanvas) String() string {
	s := ""
	for _, op := range c.ops {
		s += fmt.Sprintf("%s %v\n", op.Op, op.Params)
	}
	return s
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// params creates a map from alternating key-value pairs.
func params(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
