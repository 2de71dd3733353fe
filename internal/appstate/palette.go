package appstate

import (
	"fmt"
	"image/color"
)

// PaletteColor is a named swatch in the toolbar palette.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var defaultPalette = []PaletteColor{
	{"Black", color.RGBA{0, 0, 0, 255}},
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Lime", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Maroon", color.RGBA{128, 0, 0, 255}},
	{"Green", color.RGBA{0, 128, 0, 255}},
	{"Navy", color.RGBA{0, 0, 128, 255}},
	{"Olive", color.RGBA{128, 128, 0, 255}},
	{"Teal", color.RGBA{0, 128, 128, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Silver", color.RGBA{192, 192, 192, 255}},
	{"Gray", color.RGBA{128, 128, 128, 255}},
}

// Palette returns a copy of the built-in drawing colours.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(defaultPalette))
	copy(out, defaultPalette)
	return out
}

// ensurePaletteColor returns the index of col in p, appending a swatch
// named after its hex value when it is missing.
func ensurePaletteColor(p []PaletteColor, col color.Color) ([]PaletteColor, int) {
	c := color.RGBAModel.Convert(col).(color.RGBA)
	for i, existing := range p {
		if existing.Color == c {
			return p, i
		}
	}
	name := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	if c.A != 0xff {
		name += fmt.Sprintf("%02X", c.A)
	}
	return append(p, PaletteColor{Name: name, Color: c}), len(p)
}
