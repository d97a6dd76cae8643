package animation

import (
	"fmt"
	"math"
	"strings"
)

// A curve maps linear progress t in [0, 1] to eased progress, with
// f(0) = 0 and f(1) = 1. Cross-fades default to EaseInOut.

// LinearCurve leaves progress unchanged.
func LinearCurve(t float64) float64 { return t }

// The CSS timing functions of the same names.
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn    = CubicBezier(0.42, 0, 1, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

// CurveNames lists the names ParseCurve accepts.
var CurveNames = []string{"linear", "ease", "ease-in", "ease-out", "ease-in-out"}

// ParseCurve returns the named curve. Names are case-insensitive and
// the empty name means ease-in-out.
func ParseCurve(name string) (func(float64) float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return LinearCurve, nil
	case "ease":
		return Ease, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out", "":
		return EaseInOut, nil
	}
	return nil, fmt.Errorf("unknown curve %q (want one of %s)", name, strings.Join(CurveNames, ", "))
}

// CubicBezier returns the curve through (0,0) and (1,1) with control
// points (x1,y1) and (x2,y2), as CSS cubic-bezier(). x1 and x2 must be
// in [0, 1] for the curve to be a function of t.
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	b := newBezier(x1, y1, x2, y2)
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return b.y(b.solve(t))
	}
}

// bezier holds the polynomial coefficients of both axes, so that
// x(u) = ((ax*u + bx)*u + cx)*u and likewise for y.
type bezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

func newBezier(x1, y1, x2, y2 float64) bezier {
	var b bezier
	b.cx = 3 * x1
	b.bx = 3*(x2-x1) - b.cx
	b.ax = 1 - b.cx - b.bx
	b.cy = 3 * y1
	b.by = 3*(y2-y1) - b.cy
	b.ay = 1 - b.cy - b.by
	return b
}

func (b bezier) x(u float64) float64  { return ((b.ax*u+b.bx)*u + b.cx) * u }
func (b bezier) y(u float64) float64  { return ((b.ay*u+b.by)*u + b.cy) * u }
func (b bezier) dx(u float64) float64 { return (3*b.ax*u+2*b.bx)*u + b.cx }

// solve finds u with x(u) = x. Newton's method usually converges in a
// few steps; bisection covers flat spots where it cannot.
func (b bezier) solve(x float64) float64 {
	const epsilon = 1e-7

	u := x
	for range 8 {
		err := b.x(u) - x
		if math.Abs(err) < epsilon {
			return u
		}
		slope := b.dx(u)
		if math.Abs(slope) < 1e-6 {
			break
		}
		u -= err / slope
	}

	lo, hi := 0.0, 1.0
	u = x
	for range 32 {
		err := b.x(u) - x
		if math.Abs(err) < epsilon {
			break
		}
		if err > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}
