package graphics

import (
	stderrors "errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-drift/statefade/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 12

	// ellipsis is appended to text truncated by [LayoutTextEllipsized].
	ellipsis = "…"
)

// FontWeight represents a numeric font weight.
type FontWeight int

const (
	FontWeightNormal   FontWeight = 400
	FontWeightSemibold FontWeight = 600
	FontWeightBold     FontWeight = 700
)

// String returns a human-readable representation of the font weight.
func (w FontWeight) String() string {
	switch w {
	case FontWeightNormal:
		return "normal"
	case FontWeightSemibold:
		return "semibold"
	case FontWeightBold:
		return "bold"
	default:
		return fmt.Sprintf("FontWeight(%d)", int(w))
	}
}

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color      Color
	FontSize   float64
	FontWeight FontWeight
}

// WithColor returns a copy of the TextStyle with the specified color.
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}

// Bold returns a copy of the TextStyle with a bold weight.
func (s TextStyle) Bold() TextStyle {
	s.FontWeight = FontWeightBold
	return s
}

func (s TextStyle) isBold() bool {
	return s.FontWeight >= FontWeightSemibold
}

// TextLayout contains measured text metrics and a resolved font face.
type TextLayout struct {
	Text    string
	Style   TextStyle
	Size    Size
	Ascent  float64
	Descent float64
	Face    font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// FontManager resolves and caches font faces for text layout. It ships
// with the Go fonts so layout is identical on every host.
type FontManager struct {
	mu      sync.Mutex
	regular *sfnt.Font
	bold    *sfnt.Font
	faces   map[faceKey]font.Face
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager parses the bundled fonts.
func NewFontManager() (*FontManager, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &FontManager{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled fonts.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.Error{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindRender,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns a shared font manager, or nil on error.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// Face resolves a font face for the given style. When the scalable face
// cannot be built it falls back to the fixed 7x13 bitmap face.
func (m *FontManager) Face(style TextStyle) font.Face {
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	key := faceKey{bold: style.isBold(), size: size}

	m.mu.Lock()
	defer m.mu.Unlock()
	if face, ok := m.faces[key]; ok {
		return face
	}
	src := m.regular
	if key.bold {
		src = m.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		face = basicfont.Face7x13
	}
	m.faces[key] = face
	return face
}

// LineHeight returns the height of one line of text in the given style.
func (m *FontManager) LineHeight(style TextStyle) float64 {
	metrics := m.Face(style).Metrics()
	return float64(metrics.Height.Ceil())
}

// LayoutText measures text using the provided font manager.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	face := manager.Face(style)
	metrics := face.Metrics()
	width := font.MeasureString(face, text)
	return &TextLayout{
		Text:    text,
		Style:   style,
		Face:    face,
		Ascent:  float64(metrics.Ascent.Ceil()),
		Descent: float64(metrics.Descent.Ceil()),
		Size: Size{
			Width:  float64(width.Ceil()),
			Height: float64(metrics.Height.Ceil()),
		},
	}, nil
}

// LayoutTextEllipsized lays out text on a single line, trimming runes from
// the end and appending an ellipsis until it fits within maxWidth.
func LayoutTextEllipsized(text string, style TextStyle, manager *FontManager, maxWidth float64) (*TextLayout, error) {
	layout, err := LayoutText(text, style, manager)
	if err != nil {
		return nil, err
	}
	if maxWidth <= 0 || math.IsInf(maxWidth, 0) || layout.Size.Width <= maxWidth {
		return layout, nil
	}
	runes := []rune(text)
	for n := len(runes) - 1; n >= 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		width := font.MeasureString(layout.Face, candidate)
		if float64(width.Ceil()) <= maxWidth || n == 0 {
			layout.Text = candidate
			layout.Size.Width = float64(width.Ceil())
			return layout, nil
		}
	}
	return layout, nil
}
