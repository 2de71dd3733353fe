package annotate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDefaults(t *testing.T) {
	s := NewSession(solid(30, 20, color.White))
	w, h := s.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)
	assert.Equal(t, KindPen, s.Active().Kind())
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, DefaultColor, s.Color())

	var kinds []Kind
	for _, tool := range s.Tools() {
		kinds = append(kinds, tool.Kind())
	}
	assert.Equal(t, Kinds, kinds)
}

func TestSessionOriginMapping(t *testing.T) {
	s := NewSession(solid(50, 50, color.White), WithOrigin(Pt(10, 5)))
	s.Press(Pt(20, 15))
	s.Move(Pt(30, 15))
	require.NoError(t, s.Release(Pt(40, 15)))

	pen := s.Tool(KindPen).(*Pen)
	assert.Equal(t, []Point{Pt(10, 10), Pt(20, 10), Pt(30, 10)}, pen.Strokes()[0].Points)
}

func TestSessionToolSwitchWhileDrawing(t *testing.T) {
	s := NewSession(solid(50, 50, color.White))
	s.Press(Pt(1, 1))
	assert.Equal(t, StateDrawing, s.State())
	err := s.SelectTool(KindRectangle)
	assert.ErrorIs(t, err, ErrDrawing)
	assert.Equal(t, KindPen, s.Active().Kind())

	require.NoError(t, s.Release(Pt(10, 10)))
	require.NoError(t, s.SelectTool(KindRectangle))
	assert.Equal(t, KindRectangle, s.Active().Kind())
	assert.ErrorIs(t, s.SelectTool(Kind(42)), ErrUnknownTool)
}

func TestSessionColourSampledAtPress(t *testing.T) {
	s := NewSession(solid(50, 50, color.White), WithColor(red))
	s.Press(Pt(5, 5))
	s.SetColor(blue)
	require.NoError(t, s.Release(Pt(40, 5)))

	s.Press(Pt(5, 30))
	require.NoError(t, s.Release(Pt(40, 30)))

	strokes := s.Tool(KindPen).(*Pen).Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, red, strokes[0].Color)
	assert.Equal(t, blue, strokes[1].Color)
}

func TestSessionUndoTargetsActiveTool(t *testing.T) {
	s := NewSession(solid(50, 50, color.White))
	s.Press(Pt(5, 5))
	require.NoError(t, s.Release(Pt(40, 5)))
	require.NoError(t, s.SelectTool(KindRectangle))
	s.Press(Pt(10, 10))
	require.NoError(t, s.Release(Pt(30, 30)))

	s.Undo()
	assert.Equal(t, 1, s.Tool(KindPen).Len())
	assert.Zero(t, s.Tool(KindRectangle).Len())
}

func TestSessionDoublePressIgnored(t *testing.T) {
	s := NewSession(solid(50, 50, color.White))
	s.Press(Pt(1, 1))
	s.Press(Pt(20, 20))
	require.NoError(t, s.Release(Pt(30, 1)))
	assert.Equal(t, []Point{Pt(1, 1), Pt(30, 1)}, s.Tool(KindPen).(*Pen).Strokes()[0].Points)
	assert.NoError(t, s.Release(Pt(0, 0)), "release while idle")
}

func TestSessionFlattenLeavesBase(t *testing.T) {
	s := NewSession(solid(60, 60, color.White))
	s.Press(Pt(0, 20))
	require.NoError(t, s.Release(Pt(60, 20)))

	before := pix(s.Base())
	first := s.Flatten()
	second := s.Flatten()
	assert.Equal(t, before, pix(s.Base()))
	assert.Equal(t, first.Pix, second.Pix)
	assert.Greater(t, first.RGBAAt(30, 20).R, uint8(200))
	assert.Less(t, first.RGBAAt(30, 20).G, uint8(50))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, first.RGBAAt(30, 50))
}

func TestSessionCrop(t *testing.T) {
	s := NewSession(solid(100, 80, color.White))
	s.Press(Pt(0, 20))
	require.NoError(t, s.Release(Pt(100, 20)))

	require.NoError(t, s.SelectTool(KindCrop))
	s.Press(Pt(10, 10))
	s.Move(Pt(30, 30))
	require.NoError(t, s.Release(Pt(50, 40)))

	w, h := s.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
	for _, tool := range s.Tools() {
		assert.Zero(t, tool.Len(), tool.Kind().String())
		assert.Equal(t, image.Rect(0, 0, 40, 30), tool.Surface().Image().Bounds())
	}
	baked := s.Base().RGBAAt(20, 10)
	assert.Greater(t, baked.R, uint8(200), "pen stroke is part of the new base")
	assert.Less(t, baked.G, uint8(50))
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, KindCrop, s.Active().Kind())
}

func TestSessionEmptyCropIsCancelled(t *testing.T) {
	s := NewSession(solid(40, 40, color.White))
	s.Press(Pt(0, 20))
	require.NoError(t, s.Release(Pt(40, 20)))
	before := pix(s.Base())

	require.NoError(t, s.SelectTool(KindCrop))
	s.Press(Pt(10, 10))
	err := s.Release(Pt(10, 35))
	assert.ErrorIs(t, err, ErrEmptySelection)

	w, h := s.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, before, pix(s.Base()))
	assert.Equal(t, 1, s.Tool(KindPen).Len())
	_, ok := s.Tool(KindCrop).(*Crop).Selection()
	assert.False(t, ok)
}

func TestSessionExport(t *testing.T) {
	s := NewSession(solid(10, 10, color.White))
	var got *image.RGBA
	require.NoError(t, s.Export(SinkFunc(func(img *image.RGBA) error {
		got = img
		return nil
	})))
	require.NotNil(t, got)
	assert.Equal(t, s.Base().Pix, got.Pix)
	assert.NotSame(t, s.Base(), got)

	boom := errors.New("boom")
	err := s.Export(SinkFunc(func(*image.RGBA) error { return boom }))
	assert.ErrorIs(t, err, boom)
	assert.Error(t, s.Export(nil))
}

func TestSessionRender(t *testing.T) {
	s := NewSession(gradient(10, 10))
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	s.Render(dst, image.Pt(3, 4))
	assert.Equal(t, s.Base().RGBAAt(2, 2), dst.RGBAAt(5, 6))
}

func TestSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	s := NewSession(solid(10, 10, color.White), WithLogger(log.New(&buf, "", 0)), WithTool(KindRectangle))
	s.Press(Pt(1, 1))
	require.NoError(t, s.Release(Pt(5, 5)))
	assert.Contains(t, buf.String(), "rectangle press")
}
