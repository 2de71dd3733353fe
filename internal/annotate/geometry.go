package annotate

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Point is a position in image coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Image rounds p to the nearest pixel.
func (p Point) Image() image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is a pair of corners. The corners are kept in the order they were
// given; use Canon to get Min <= Max.
type Rect struct {
	Min, Max Point
}

// Canon returns r with its corners ordered so that Min is the top-left.
func (r Rect) Canon() Rect {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Dx returns the signed width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the signed height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Image rounds r to whole pixels.
func (r Rect) Image() image.Rectangle {
	c := r.Canon()
	return image.Rect(
		int(math.Round(c.Min.X)), int(math.Round(c.Min.Y)),
		int(math.Round(c.Max.X)), int(math.Round(c.Max.Y)),
	)
}

// Color is a non-premultiplied colour with every channel in [0,1].
type Color struct {
	R, G, B, A float64
}

// DefaultColor is the colour a session starts with.
var DefaultColor = Color{R: 1, A: 1}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c.A)
	a = uint32(alpha*0xffff + 0.5)
	r = uint32(clamp01(c.R)*alpha*0xffff + 0.5)
	g = uint32(clamp01(c.G)*alpha*0xffff + 0.5)
	b = uint32(clamp01(c.B)*alpha*0xffff + 0.5)
	return
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func (c Color) Hex() string {
	r := uint8(clamp01(c.R)*255 + 0.5)
	g := uint8(clamp01(c.G)*255 + 0.5)
	b := uint8(clamp01(c.B)*255 + 0.5)
	a := uint8(clamp01(c.A)*255 + 0.5)
	if a == 255 {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

func (c Color) String() string { return c.Hex() }

// ColorOf converts any color.Color.
func ColorOf(col color.Color) Color {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// ParseColor accepts an SVG colour name, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return Color{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return ColorOf(c), nil
	}
	if !strings.HasPrefix(spec, "#") || (len(spec) != 7 && len(spec) != 9) {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(spec[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	if len(spec) == 7 {
		val = val<<8 | 0xFF
	}
	return ColorOf(color.NRGBA{
		R: uint8(val >> 24),
		G: uint8(val >> 16),
		B: uint8(val >> 8),
		A: uint8(val),
	}), nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
