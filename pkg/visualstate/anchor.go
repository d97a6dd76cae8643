package visualstate

import (
	"fmt"
	"strings"

	"github.com/go-drift/statefade/pkg/graphics"
)

// Anchor is a set of edges that a trigger's bounds stay attached to when
// the widget resizes.
type Anchor uint8

const (
	AnchorLeft Anchor = 1 << iota
	AnchorTop
	AnchorRight
	AnchorBottom

	// AnchorDefault keeps bounds fixed relative to the top-left corner.
	AnchorDefault = AnchorLeft | AnchorTop
	// AnchorAll stretches bounds with the widget on both axes.
	AnchorAll = AnchorLeft | AnchorTop | AnchorRight | AnchorBottom
)

// Has reports whether every edge in edges is set.
func (a Anchor) Has(edges Anchor) bool {
	return a&edges == edges
}

func (a Anchor) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, e := range []struct {
		bit  Anchor
		name string
	}{{AnchorLeft, "left"}, {AnchorTop, "top"}, {AnchorRight, "right"}, {AnchorBottom, "bottom"}} {
		if a.Has(e.bit) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseAnchor builds an Anchor from edge names.
func ParseAnchor(edges []string) (Anchor, error) {
	var a Anchor
	for _, name := range edges {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "left":
			a |= AnchorLeft
		case "top":
			a |= AnchorTop
		case "right":
			a |= AnchorRight
		case "bottom":
			a |= AnchorBottom
		default:
			return 0, fmt.Errorf("unknown anchor edge %q", name)
		}
	}
	return a, nil
}

// ApplyAnchor returns bounds moved and resized for a widget size change
// of delta. Per axis: an unanchored near edge (left/top) shifts the origin
// by the full delta; an anchored far edge (right/bottom) grows the extent
// by the delta. Anchored near with unanchored far leaves bounds unchanged.
// Width and height never go below zero.
func ApplyAnchor(bounds graphics.Rect, anchor Anchor, delta graphics.Size) graphics.Rect {
	x, y := bounds.Left, bounds.Top
	w, h := bounds.Width(), bounds.Height()

	if !anchor.Has(AnchorLeft) {
		x += delta.Width
	}
	if anchor.Has(AnchorRight) {
		w += delta.Width
	}
	if !anchor.Has(AnchorTop) {
		y += delta.Height
	}
	if anchor.Has(AnchorBottom) {
		h += delta.Height
	}
	return graphics.RectFromLTWH(x, y, max(w, 0), max(h, 0))
}

// ResizeTriggers re-anchors every trigger with explicit bounds for a size
// change of delta. Whole-client triggers are left alone.
func (r *Registry) ResizeTriggers(delta graphics.Size) {
	if delta == (graphics.Size{}) {
		return
	}
	r.updateTriggers(func(t Trigger) Trigger {
		if !t.HasExplicitBounds() {
			return t
		}
		t.Bounds = ApplyAnchor(t.Bounds, t.EffectiveAnchor(), delta)
		return t
	})
}
