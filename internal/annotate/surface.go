package annotate

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/gogpu/gg"
)

// Surface is an offscreen raster owned by exactly one tool. Every render
// starts from a transparent surface.
type Surface struct {
	dc  *gg.Context
	img *image.RGBA
}

// NewSurface allocates a transparent surface of the given size.
func NewSurface(width, height int) *Surface {
	s := &Surface{dc: gg.NewContext(width, height)}
	s.snapshot()
	return s
}

// Bounds returns the surface rectangle, anchored at the origin.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.dc.Width(), s.dc.Height())
}

// Image returns the pixels of the last completed render. The returned image
// must be treated as read-only.
func (s *Surface) Image() *image.RGBA { return s.img }

// render clears the surface, runs fn against the drawing context and
// publishes the result.
func (s *Surface) render(fn func(dc *gg.Context)) {
	s.dc.ClearPath()
	s.dc.Clear()
	if fn != nil {
		fn(s.dc)
	}
	s.snapshot()
}

func (s *Surface) clear() { s.render(nil) }

func (s *Surface) snapshot() {
	_ = s.dc.FlushGPU()
	src := s.dc.Image()
	if rgba, ok := src.(*image.RGBA); ok {
		s.img = rgba
		return
	}
	s.img = clone.AsRGBA(src)
}

func (s *Surface) close() {
	if s.dc != nil {
		_ = s.dc.Close()
	}
}

func setColor(dc *gg.Context, c Color) {
	dc.SetRGBA(clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A))
}
