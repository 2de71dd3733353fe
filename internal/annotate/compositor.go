package annotate

import (
	"image"
	"image/draw"
)

// Compositor paints the base image followed by each tool surface in
// registration order. The active tool has no influence on the order.
type Compositor struct {
	layers []Tool
}

// NewCompositor returns a compositor over the given tools, bottom first.
func NewCompositor(layers ...Tool) *Compositor {
	return &Compositor{layers: append([]Tool(nil), layers...)}
}

// Layers returns the tools in paint order.
func (c *Compositor) Layers() []Tool {
	return append([]Tool(nil), c.layers...)
}

// Render paints base and every layer into dst with the top-left corner at
// at. Nothing is scaled.
func (c *Compositor) Render(dst draw.Image, at image.Point, base image.Image) {
	if base != nil {
		b := base.Bounds()
		draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(b.Size())}, base, b.Min, draw.Src)
	}
	c.paint(dst, at)
}

// Flatten composites every layer over dst in place.
func (c *Compositor) Flatten(dst *image.RGBA) {
	c.paint(dst, dst.Bounds().Min)
}

func (c *Compositor) paint(dst draw.Image, at image.Point) {
	for _, t := range c.layers {
		img := t.Surface().Image()
		if img == nil {
			continue
		}
		draw.Draw(dst, img.Bounds().Add(at), img, img.Bounds().Min, draw.Over)
	}
}
