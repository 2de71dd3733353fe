package annotate

import (
	"github.com/gogpu/gg"
)

// RectangleWidth is the outline width used by the rectangle tool.
const RectangleWidth = 2.0

// RectangleShape is a committed outline. Start is the press point and End
// the release point; either may be the top-left.
type RectangleShape struct {
	Start, End Point
	Color      Color
}

// Rect returns the shape's bounds.
func (r RectangleShape) Rect() Rect { return Rect{Min: r.Start, Max: r.End}.Canon() }

// Rectangle draws axis-aligned outlines.
type Rectangle struct {
	surface    *Surface
	shapes     []RectangleShape
	start, end Point
	color      Color
	drawing    bool
}

// NewRectangle returns a rectangle tool with an empty surface.
func NewRectangle(width, height int) *Rectangle {
	return &Rectangle{surface: NewSurface(width, height)}
}

func (r *Rectangle) tool() {}

func (r *Rectangle) Kind() Kind { return KindRectangle }

func (r *Rectangle) Surface() *Surface { return r.surface }

func (r *Rectangle) Drawing() bool { return r.drawing }

func (r *Rectangle) Len() int { return len(r.shapes) }

func (r *Rectangle) Press(pt Point, c Color) {
	r.color = c
	r.start, r.end = pt, pt
	r.drawing = true
}

func (r *Rectangle) Move(pt Point) {
	if !r.drawing {
		return
	}
	r.end = pt
	r.redraw()
}

func (r *Rectangle) Release(pt Point) {
	if !r.drawing {
		return
	}
	r.end = pt
	r.shapes = append(r.shapes, RectangleShape{Start: r.start, End: r.end, Color: r.color})
	r.drawing = false
	r.redraw()
}

func (r *Rectangle) Undo() {
	if len(r.shapes) == 0 {
		return
	}
	r.shapes = r.shapes[:len(r.shapes)-1]
	r.redraw()
}

func (r *Rectangle) Reset(width, height int) {
	r.surface.close()
	r.surface = NewSurface(width, height)
	r.shapes = nil
	r.drawing = false
}

// Shapes returns a copy of the committed rectangles, oldest first.
func (r *Rectangle) Shapes() []RectangleShape {
	return append([]RectangleShape(nil), r.shapes...)
}

func (r *Rectangle) redraw() {
	r.surface.render(func(dc *gg.Context) {
		for _, s := range r.shapes {
			drawOutline(dc, s.Start, s.End, s.Color)
		}
		if r.drawing {
			drawOutline(dc, r.start, r.end, r.color)
		}
	})
}

func drawOutline(dc *gg.Context, start, end Point, c Color) {
	setColor(dc, c)
	dc.SetLineWidth(RectangleWidth)
	dc.SetLineJoin(gg.LineJoinMiter)
	dc.DrawRectangle(start.X, start.Y, end.X-start.X, end.Y-start.Y)
	_ = dc.Stroke()
}
