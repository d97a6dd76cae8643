package graphics

import "image"

// Canvas records or renders drawing commands.
//
// Paint callbacks and the list layout engine draw exclusively through this
// interface so they can target a raster surface, an off-screen animation
// buffer or a recording canvas in tests.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()

	// Restore pops the most recent transform and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawText draws a pre-shaped text layout with its top-left corner at
	// the given position.
	DrawText(layout *TextLayout, position Offset)

	// DrawImage draws an image with its top-left corner at the given position.
	DrawImage(image image.Image, position Offset)

	// DrawImageRect draws an image scaled into dstRect.
	DrawImageRect(img image.Image, dstRect Rect)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
