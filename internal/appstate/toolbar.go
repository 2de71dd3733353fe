package appstate

import (
	"image"
)

const (
	buttonHeight    = 24
	swatchSize      = 16
	swatchStep      = 18
	sectionGap      = 4
	statusHeight    = 24
	minToolbarWidth = 48
)

// toolbar is the column on the left of the window: tool buttons, the colour
// palette and the action buttons, top to bottom.
type toolbar struct {
	width    int
	tools    []*CacheButton
	actions  []*CacheButton
	swatches []image.Rectangle
	height   int
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTool
	hitSwatch
	hitAction
)

// toolbarWidthFor returns a width wide enough for every label.
func toolbarWidthFor(labels []string) int {
	w := minToolbarWidth
	for _, l := range labels {
		if m := measure(l) + 8; m > w {
			w = m
		}
	}
	return w
}

func (tb *toolbar) layout(swatches int) {
	y := 0
	for _, b := range tb.tools {
		b.SetRect(image.Rect(0, y, tb.width, y+buttonHeight))
		y += buttonHeight
	}

	y += sectionGap
	cols := (tb.width - sectionGap) / swatchStep
	if cols < 1 {
		cols = 1
	}
	tb.swatches = tb.swatches[:0]
	for i := 0; i < swatches; i++ {
		x := sectionGap + (i%cols)*swatchStep
		sy := y + (i/cols)*swatchStep
		tb.swatches = append(tb.swatches, image.Rect(x, sy, x+swatchSize, sy+swatchSize))
	}
	y += (swatches+cols-1)/cols*swatchStep + sectionGap

	for _, b := range tb.actions {
		b.SetRect(image.Rect(0, y, tb.width, y+buttonHeight))
		y += buttonHeight
	}
	tb.height = y
}

// hit reports which element of the toolbar contains p.
func (tb *toolbar) hit(p image.Point) (hitKind, int) {
	for i, b := range tb.tools {
		if p.In(b.Rect()) {
			return hitTool, i
		}
	}
	for i, r := range tb.swatches {
		if p.In(r) {
			return hitSwatch, i
		}
	}
	for i, b := range tb.actions {
		if p.In(b.Rect()) {
			return hitAction, i
		}
	}
	return hitNone, -1
}
