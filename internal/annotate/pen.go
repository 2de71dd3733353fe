package annotate

import (
	"github.com/gogpu/gg"
)

// PenWidth is the stroke width used by the pen.
const PenWidth = 3.0

// Stroke is a committed freehand polyline.
type Stroke struct {
	Points []Point
	Color  Color
}

// Pen draws freehand polylines.
type Pen struct {
	surface *Surface
	strokes []Stroke
	points  []Point
	color   Color
	drawing bool
}

// NewPen returns a pen with an empty surface of the given size.
func NewPen(width, height int) *Pen {
	return &Pen{surface: NewSurface(width, height)}
}

func (p *Pen) tool() {}

func (p *Pen) Kind() Kind { return KindPen }

func (p *Pen) Surface() *Surface { return p.surface }

func (p *Pen) Drawing() bool { return p.drawing }

func (p *Pen) Len() int { return len(p.strokes) }

func (p *Pen) Press(pt Point, c Color) {
	p.color = c
	p.points = append(p.points[:0], pt)
	p.drawing = true
}

func (p *Pen) Move(pt Point) {
	if !p.drawing {
		return
	}
	p.points = append(p.points, pt)
	p.redraw()
}

func (p *Pen) Release(pt Point) {
	if !p.drawing {
		return
	}
	if last := p.points[len(p.points)-1]; last != pt {
		p.points = append(p.points, pt)
	}
	p.strokes = append(p.strokes, Stroke{
		Points: append([]Point(nil), p.points...),
		Color:  p.color,
	})
	p.points = p.points[:0]
	p.drawing = false
	p.redraw()
}

func (p *Pen) Undo() {
	if len(p.strokes) == 0 {
		return
	}
	p.strokes = p.strokes[:len(p.strokes)-1]
	p.redraw()
}

func (p *Pen) Reset(width, height int) {
	p.surface.close()
	p.surface = NewSurface(width, height)
	p.strokes = nil
	p.points = nil
	p.drawing = false
}

// Strokes returns a copy of the committed strokes, oldest first.
func (p *Pen) Strokes() []Stroke {
	out := make([]Stroke, len(p.strokes))
	for i, s := range p.strokes {
		out[i] = Stroke{Points: append([]Point(nil), s.Points...), Color: s.Color}
	}
	return out
}

func (p *Pen) redraw() {
	p.surface.render(func(dc *gg.Context) {
		for _, s := range p.strokes {
			drawPolyline(dc, s.Points, s.Color)
		}
		if p.drawing {
			drawPolyline(dc, p.points, p.color)
		}
	})
}

func drawPolyline(dc *gg.Context, pts []Point, c Color) {
	if len(pts) < 2 {
		return
	}
	setColor(dc, c)
	dc.SetLineWidth(PenWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	_ = dc.Stroke()
}
