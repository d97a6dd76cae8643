// Package theme defines the colors and text style used to paint grouped
// lists and their visual-state faces.
package theme

import (
	"fmt"

	"github.com/go-drift/statefade/pkg/animation"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/visualstate"
)

// Brightness selects a light or dark palette.
type Brightness int

const (
	BrightnessLight Brightness = iota
	BrightnessDark
)

func (b Brightness) String() string {
	switch b {
	case BrightnessLight:
		return "light"
	case BrightnessDark:
		return "dark"
	default:
		return fmt.Sprintf("Brightness(%d)", int(b))
	}
}

// ParseBrightness maps "light" and "dark"; anything else is an error.
func ParseBrightness(name string) (Brightness, error) {
	switch name {
	case "", "light":
		return BrightnessLight, nil
	case "dark":
		return BrightnessDark, nil
	default:
		return 0, fmt.Errorf("unknown brightness %q", name)
	}
}

// ColorScheme is the palette for list rows.
type ColorScheme struct {
	Background         graphics.Color
	OnBackground       graphics.Color
	Selection          graphics.Color
	OnSelection        graphics.Color
	DisabledBackground graphics.Color
	OnDisabled         graphics.Color
	Header             graphics.Color
	Focus              graphics.Color
	Border             graphics.Color
}

// ThemeData contains all theme configuration for a grouped list.
type ThemeData struct {
	// ColorScheme defines the row palette.
	ColorScheme ColorScheme

	// TextStyle is the base style for item text. Group headers use its
	// bold variant.
	TextStyle graphics.TextStyle

	// Brightness indicates if this is a light or dark theme.
	Brightness Brightness

	// FaceColors gives the widget face background per visual state.
	// States without an entry paint with ColorScheme.Background.
	FaceColors map[visualstate.State]graphics.Color
}

// LightColorScheme returns the default light palette.
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Background:         graphics.RGB(0xFF, 0xFF, 0xFF),
		OnBackground:       graphics.RGB(0x1F, 0x1F, 0x1F),
		Selection:          graphics.RGB(0x00, 0x78, 0xD7),
		OnSelection:        graphics.RGB(0xFF, 0xFF, 0xFF),
		DisabledBackground: graphics.RGB(0xF0, 0xF0, 0xF0),
		OnDisabled:         graphics.RGB(0x9E, 0x9E, 0x9E),
		Header:             graphics.RGB(0x1F, 0x1F, 0x1F),
		Focus:              graphics.RGB(0x00, 0x00, 0x00),
		Border:             graphics.RGB(0x7A, 0x7A, 0x7A),
	}
}

// DarkColorScheme returns the default dark palette.
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Background:         graphics.RGB(0x20, 0x20, 0x20),
		OnBackground:       graphics.RGB(0xF2, 0xF2, 0xF2),
		Selection:          graphics.RGB(0x4C, 0xC2, 0xFF),
		OnSelection:        graphics.RGB(0x00, 0x00, 0x00),
		DisabledBackground: graphics.RGB(0x2B, 0x2B, 0x2B),
		OnDisabled:         graphics.RGB(0x6E, 0x6E, 0x6E),
		Header:             graphics.RGB(0xF2, 0xF2, 0xF2),
		Focus:              graphics.RGB(0xFF, 0xFF, 0xFF),
		Border:             graphics.RGB(0x9A, 0x9A, 0x9A),
	}
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	return newTheme(LightColorScheme(), BrightnessLight)
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	return newTheme(DarkColorScheme(), BrightnessDark)
}

// ForBrightness returns the default theme for b.
func ForBrightness(b Brightness) *ThemeData {
	if b == BrightnessDark {
		return DefaultDarkTheme()
	}
	return DefaultLightTheme()
}

func newTheme(colors ColorScheme, brightness Brightness) *ThemeData {
	return &ThemeData{
		ColorScheme: colors,
		TextStyle:   graphics.TextStyle{Color: colors.OnBackground, FontSize: 12, FontWeight: graphics.FontWeightNormal},
		Brightness:  brightness,
		FaceColors:  DeriveFaceColors(colors),
	}
}

// DeriveFaceColors tints the background toward the selection color for
// the interactive states.
func DeriveFaceColors(colors ColorScheme) map[visualstate.State]graphics.Color {
	return map[visualstate.State]graphics.Color{
		visualstate.Normal:   colors.Background,
		visualstate.Focused:  colors.Background,
		visualstate.Hot:      animation.LerpColor(colors.Background, colors.Selection, 0.15),
		visualstate.Pressed:  animation.LerpColor(colors.Background, colors.Selection, 0.35),
		visualstate.Disabled: colors.DisabledBackground,
	}
}

// FaceColor returns the face background for s.
func (t *ThemeData) FaceColor(s visualstate.State) graphics.Color {
	if c, ok := t.FaceColors[s]; ok {
		return c
	}
	return t.ColorScheme.Background
}

// HeaderStyle returns the bold style for group headers.
func (t *ThemeData) HeaderStyle() graphics.TextStyle {
	return t.TextStyle.Bold().WithColor(t.ColorScheme.Header)
}

// CopyWith returns a new ThemeData with the specified fields overridden.
// Face colors are copied, not shared.
func (t *ThemeData) CopyWith(colorScheme *ColorScheme, textStyle *graphics.TextStyle, brightness *Brightness) *ThemeData {
	result := &ThemeData{
		ColorScheme: t.ColorScheme,
		TextStyle:   t.TextStyle,
		Brightness:  t.Brightness,
		FaceColors:  make(map[visualstate.State]graphics.Color, len(t.FaceColors)),
	}
	for k, v := range t.FaceColors {
		result.FaceColors[k] = v
	}
	if colorScheme != nil {
		result.ColorScheme = *colorScheme
	}
	if textStyle != nil {
		result.TextStyle = *textStyle
	}
	if brightness != nil {
		result.Brightness = *brightness
	}
	return result
}
