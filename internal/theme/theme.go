// Package theme defines the colours used by the annotation window chrome.
package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area around the image
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // Selected tool
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// Status line shown briefly after save/copy/crop
	MessageBackground color.RGBA
	MessageText       color.RGBA

	// Canvas behind transparent pixels
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                   "default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{235, 235, 235, 255},
		ButtonBackground:       color.RGBA{205, 205, 205, 255},
		ButtonBackgroundHover:  color.RGBA{185, 185, 185, 255},
		ButtonBackgroundActive: color.RGBA{150, 170, 210, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{90, 90, 90, 255},
		MessageBackground:      color.RGBA{40, 40, 40, 220},
		MessageText:            color.RGBA{255, 255, 255, 255},
		CheckerLight:           color.RGBA{220, 220, 220, 255},
		CheckerDark:            color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                   "dark",
		Background:             color.RGBA{32, 32, 36, 255},
		Foreground:             color.RGBA{230, 230, 230, 255},
		ToolbarBackground:      color.RGBA{45, 45, 50, 255},
		ButtonBackground:       color.RGBA{64, 64, 70, 255},
		ButtonBackgroundHover:  color.RGBA{84, 84, 92, 255},
		ButtonBackgroundActive: color.RGBA{60, 90, 150, 255},
		ButtonText:             color.RGBA{235, 235, 235, 255},
		ButtonBorder:           color.RGBA{120, 120, 130, 255},
		MessageBackground:      color.RGBA{230, 230, 230, 220},
		MessageText:            color.RGBA{20, 20, 20, 255},
		CheckerLight:           color.RGBA{70, 70, 70, 255},
		CheckerDark:            color.RGBA{50, 50, 50, 255},
	}
}

var builtin = map[string]func() *Theme{
	"default": Default,
	"light":   Default,
	"dark":    Dark,
}

// Builtin returns a fresh copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in theme names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
