package animation

import "github.com/go-drift/statefade/pkg/graphics"

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor linearly interpolates each ARGB channel between two colors.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	ch := func(shift uint) uint32 {
		av := float64((uint32(a) >> shift) & 0xFF)
		bv := float64((uint32(b) >> shift) & 0xFF)
		return uint32(uint8(LerpFloat64(av, bv, t)+0.5)) << shift
	}
	return graphics.Color(ch(24) | ch(16) | ch(8) | ch(0))
}
