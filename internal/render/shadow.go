// Package render holds small raster effects used by the annotation window.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
)

// ShadowOptions configures the soft shadow cast by a panel.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// PanelShadowOptions returns the shadow used under floating panels such as
// the status message.
func PanelShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(3, 4),
		Opacity: 0.45,
	}
}

// Shadow returns the blurred shadow cast by an opaque rectangle r. The
// result lives in r's coordinate space: its bounds are r grown by the blur
// radius and moved by the offset. A nil image means there is nothing to draw.
func Shadow(r image.Rectangle, opts ShadowOptions) *image.RGBA {
	if r.Empty() || opts.Opacity <= 0 {
		return nil
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	bounds := r.Inset(-radius)
	mask := image.NewRGBA(bounds.Sub(bounds.Min))
	fill := color.RGBA{A: uint8(opacity*255 + 0.5)}
	draw.Draw(mask, r.Sub(bounds.Min), image.NewUniform(fill), image.Point{}, draw.Src)

	out := mask
	if radius > 0 {
		out = blur.Box(mask, float64(radius))
	}
	out.Rect = out.Rect.Sub(out.Rect.Min).Add(bounds.Min.Add(opts.Offset))
	return out
}

// DrawShadow composites the shadow of r onto dst.
func DrawShadow(dst draw.Image, r image.Rectangle, opts ShadowOptions) {
	s := Shadow(r, opts)
	if s == nil {
		return
	}
	draw.Draw(dst, s.Bounds(), s, s.Bounds().Min, draw.Over)
}
