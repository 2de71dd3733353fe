package annotate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySelection is returned when a crop selection has no area.
	ErrEmptySelection = errors.New("empty selection")
	// ErrDrawing is returned when the active tool is changed mid-gesture.
	ErrDrawing = errors.New("gesture in progress")
	// ErrUnknownTool is returned for a tool kind that is not registered.
	ErrUnknownTool = errors.New("unknown tool")
)

// Kind identifies one of the built-in tools.
type Kind int

const (
	KindPen Kind = iota
	KindRectangle
	KindCrop
)

// Kinds lists the built-in tools in registration order.
var Kinds = []Kind{KindPen, KindRectangle, KindCrop}

func (k Kind) String() string {
	switch k {
	case KindPen:
		return "pen"
	case KindRectangle:
		return "rectangle"
	case KindCrop:
		return "crop"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a tool name (or its short alias) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pen", "p":
		return KindPen, nil
	case "rectangle", "rect", "r":
		return KindRectangle, nil
	case "crop", "c":
		return KindCrop, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// Tool is one annotation tool. Each tool owns a surface the size of the
// current base image and redraws it from its own state only.
type Tool interface {
	Kind() Kind
	// Press begins a gesture at p using colour c.
	Press(p Point, c Color)
	// Move continues the gesture. It is ignored when no gesture is active.
	Move(p Point)
	// Release ends the gesture at p.
	Release(p Point)
	// Undo removes the most recently committed item.
	Undo()
	// Len reports the number of committed items.
	Len() int
	// Drawing reports whether a gesture is active.
	Drawing() bool
	Surface() *Surface
	// Reset discards all state and reallocates the surface.
	Reset(width, height int)

	tool()
}
