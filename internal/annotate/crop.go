package annotate

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gg"
)

// CropShade is the colour laid over everything outside the selection.
var CropShade = Color{A: 0.5}

// Crop selects a sub-rectangle of the image. It keeps no history; its
// surface only shows the selection overlay while a gesture is active.
type Crop struct {
	surface    *Surface
	start, end Point
	drawing    bool
	selected   bool
}

// NewCrop returns a crop tool with an empty surface.
func NewCrop(width, height int) *Crop {
	return &Crop{surface: NewSurface(width, height)}
}

func (c *Crop) tool() {}

func (c *Crop) Kind() Kind { return KindCrop }

func (c *Crop) Surface() *Surface { return c.surface }

func (c *Crop) Drawing() bool { return c.drawing }

// Len is always zero.
func (c *Crop) Len() int { return 0 }

// Undo has nothing to remove.
func (c *Crop) Undo() {}

func (c *Crop) Press(pt Point, _ Color) {
	c.start, c.end = pt, pt
	c.drawing = true
	c.selected = false
	c.surface.clear()
}

func (c *Crop) Move(pt Point) {
	if !c.drawing {
		return
	}
	c.end = pt
	c.redraw()
}

func (c *Crop) Release(pt Point) {
	if !c.drawing {
		return
	}
	c.end = pt
	c.drawing = false
	c.selected = true
	c.surface.clear()
}

func (c *Crop) Reset(width, height int) {
	c.surface.close()
	c.surface = NewSurface(width, height)
	c.start, c.end = Point{}, Point{}
	c.drawing = false
	c.selected = false
}

// Selection returns the current or last released selection.
func (c *Crop) Selection() (Rect, bool) {
	if !c.drawing && !c.selected {
		return Rect{}, false
	}
	return Rect{Min: c.start, Max: c.end}.Canon(), true
}

// UpdateSurface returns a copy of the selected region of composite. The
// result is anchored at the origin and has the absolute width and height of
// the selection, clipped to the composite.
func (c *Crop) UpdateSurface(composite *image.RGBA) (*image.RGBA, error) {
	sel, ok := c.Selection()
	if !ok {
		return nil, ErrEmptySelection
	}
	r := sel.Image().Add(composite.Bounds().Min).Intersect(composite.Bounds())
	if r.Empty() {
		return nil, ErrEmptySelection
	}
	out := transform.Crop(composite, r)
	out.Rect = out.Rect.Sub(out.Rect.Min)
	return out, nil
}

func (c *Crop) redraw() {
	c.surface.render(func(dc *gg.Context) {
		w, h := float64(dc.Width()), float64(dc.Height())
		sel := Rect{Min: c.start, Max: c.end}.Canon()

		setColor(dc, CropShade)
		dc.SetFillRule(gg.FillRuleEvenOdd)
		dc.DrawRectangle(0, 0, w, h)
		dc.DrawRectangle(sel.Min.X, sel.Min.Y, sel.Dx(), sel.Dy())
		_ = dc.Fill()

		setColor(dc, Color{R: 1, G: 1, B: 1, A: 1})
		dc.SetLineWidth(1)
		dc.SetLineJoin(gg.LineJoinMiter)
		dc.DrawRectangle(sel.Min.X+0.5, sel.Min.Y+0.5, sel.Dx()-1, sel.Dy()-1)
		_ = dc.Stroke()
	})
}
