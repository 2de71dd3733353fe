package annotate

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/anthonynsimon/bild/clone"
)

// State is the gesture state of a session.
type State int

const (
	StateIdle State = iota
	StateDrawing
)

func (s State) String() string {
	if s == StateDrawing {
		return "drawing"
	}
	return "idle"
}

// Option configures a Session.
type Option func(*Session)

// WithColor sets the initial drawing colour.
func WithColor(c Color) Option {
	return func(s *Session) { s.color = c }
}

// WithOrigin sets the offset of the image within the view. Points given to
// Press, Move and Release are in view coordinates.
func WithOrigin(p Point) Option {
	return func(s *Session) { s.origin = p }
}

// WithTool sets the initially active tool.
func WithTool(k Kind) Option {
	return func(s *Session) { s.initial = k }
}

// WithLogger logs gesture and crop activity to l. A nil logger disables it.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session holds the base image, the registered tools and the routing of
// pointer input to the active tool. It is not safe for concurrent use.
type Session struct {
	base    *image.RGBA
	tools   []Tool
	comp    *Compositor
	active  Tool
	initial Kind
	color   Color
	origin  Point
	state   State
	logger  *log.Logger
}

// NewSession registers the pen, rectangle and crop tools over a copy of
// base. The pen is active unless WithTool says otherwise.
func NewSession(base image.Image, opts ...Option) *Session {
	img := clone.AsRGBA(base)
	img.Rect = img.Rect.Sub(img.Rect.Min)
	s := &Session{base: img, color: DefaultColor, initial: KindPen}
	for _, opt := range opts {
		opt(s)
	}
	w, h := s.Size()
	s.tools = []Tool{NewPen(w, h), NewRectangle(w, h), NewCrop(w, h)}
	s.comp = NewCompositor(s.tools...)
	s.active = s.Tool(s.initial)
	if s.active == nil {
		s.active = s.tools[0]
	}
	return s
}

// Base returns the current base image. Callers must not modify it.
func (s *Session) Base() *image.RGBA { return s.base }

// Size returns the base image dimensions.
func (s *Session) Size() (int, int) {
	b := s.base.Bounds()
	return b.Dx(), b.Dy()
}

// Tools returns the registered tools in paint order.
func (s *Session) Tools() []Tool { return s.comp.Layers() }

// Tool returns the registered tool of kind k, or nil.
func (s *Session) Tool(k Kind) Tool {
	for _, t := range s.tools {
		if t.Kind() == k {
			return t
		}
	}
	return nil
}

// Active returns the tool receiving input.
func (s *Session) Active() Tool { return s.active }

func (s *Session) State() State { return s.state }

func (s *Session) Color() Color { return s.color }

// SetColor changes the colour used by the next gesture of any tool.
func (s *Session) SetColor(c Color) { s.color = c }

func (s *Session) Origin() Point { return s.origin }

// SetOrigin moves the image within the view.
func (s *Session) SetOrigin(p Point) { s.origin = p }

// SelectTool makes the tool of kind k active. It fails while a gesture is
// in progress.
func (s *Session) SelectTool(k Kind) error {
	if s.state == StateDrawing {
		return fmt.Errorf("select %s: %w", k, ErrDrawing)
	}
	t := s.Tool(k)
	if t == nil {
		return fmt.Errorf("select %s: %w", k, ErrUnknownTool)
	}
	s.active = t
	s.debugf("tool %s", k)
	return nil
}

// Press starts a gesture at p in view coordinates. A second press before
// a release is ignored.
func (s *Session) Press(p Point) {
	if s.state == StateDrawing {
		return
	}
	s.state = StateDrawing
	pt := s.toImage(p)
	s.debugf("%s press %s", s.active.Kind(), pt)
	s.active.Press(pt, s.color)
}

// Move continues the gesture. It is ignored while idle.
func (s *Session) Move(p Point) {
	if s.state != StateDrawing {
		return
	}
	s.active.Move(s.toImage(p))
}

// Release ends the gesture. Releasing a crop replaces the base image with
// the selected region of the flattened image and resets every tool to the
// new size. A crop with no area leaves everything untouched and returns
// ErrEmptySelection.
func (s *Session) Release(p Point) error {
	if s.state != StateDrawing {
		return nil
	}
	s.state = StateIdle
	pt := s.toImage(p)
	s.debugf("%s release %s", s.active.Kind(), pt)
	s.active.Release(pt)
	if crop, ok := s.active.(*Crop); ok {
		return s.applyCrop(crop)
	}
	return nil
}

// Undo removes the last committed item of the active tool.
func (s *Session) Undo() {
	if s.state == StateDrawing {
		return
	}
	s.active.Undo()
}

// Render paints the base and all tool surfaces into dst with the image's
// top-left corner at at.
func (s *Session) Render(dst draw.Image, at image.Point) {
	s.comp.Render(dst, at, s.base)
}

// Flatten returns a new image holding the base with every tool surface
// composited over it. The base itself is not modified.
func (s *Session) Flatten() *image.RGBA {
	out := clone.AsRGBA(s.base)
	s.comp.Flatten(out)
	return out
}

// Export hands the flattened image to sink.
func (s *Session) Export(sink Sink) error {
	if sink == nil {
		return errors.New("export: no sink")
	}
	if err := sink.Put(s.Flatten()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func (s *Session) applyCrop(crop *Crop) error {
	sub, err := crop.UpdateSurface(s.Flatten())
	if err != nil {
		w, h := s.Size()
		crop.Reset(w, h)
		s.debugf("crop cancelled: %v", err)
		return fmt.Errorf("crop: %w", err)
	}
	s.base = sub
	w, h := s.Size()
	for _, t := range s.tools {
		t.Reset(w, h)
	}
	s.debugf("cropped to %dx%d", w, h)
	return nil
}

func (s *Session) toImage(p Point) Point { return p.Sub(s.origin) }

func (s *Session) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf("annotate: "+format, args...)
	}
}
