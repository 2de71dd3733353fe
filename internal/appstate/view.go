package appstate

import (
	"image"

	"github.com/example/scrann/internal/annotate"
)

const minZoom = 0.05

// view places the image inside the canvas area. The image is shown at its
// natural size unless the area is too small, in which case it is scaled down
// to fit.
type view struct {
	rect image.Rectangle
	zoom float64
}

func fitView(area image.Rectangle, w, h int) view {
	zoom := 1.0
	if w > 0 && h > 0 {
		zoom = min(zoom, float64(area.Dx())/float64(w), float64(area.Dy())/float64(h))
	}
	if zoom < minZoom {
		zoom = minZoom
	}
	o := area.Min
	return view{
		rect: image.Rect(o.X, o.Y, o.X+int(float64(w)*zoom+0.5), o.Y+int(float64(h)*zoom+0.5)),
		zoom: zoom,
	}
}

// unscale maps a window point to the coordinates it would have if the image
// were drawn unscaled with its top-left corner at rect.Min.
func (v view) unscale(p annotate.Point) annotate.Point {
	o := annotate.Pt(float64(v.rect.Min.X), float64(v.rect.Min.Y))
	d := p.Sub(o)
	return o.Add(annotate.Pt(d.X/v.zoom, d.Y/v.zoom))
}
