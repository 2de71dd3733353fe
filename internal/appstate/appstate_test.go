package appstate

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/scrann/internal/annotate"
	"github.com/example/scrann/internal/theme"
)

type recordSink struct {
	images []*image.RGBA
	err    error
}

func (r *recordSink) Put(img *image.RGBA) error {
	if r.err != nil {
		return r.err
	}
	r.images = append(r.images, img)
	return nil
}

type recordNotifier struct {
	saved  []string
	copied []string
}

func (n *recordNotifier) Save(path string)   { n.saved = append(n.saved, path) }
func (n *recordNotifier) Copy(detail string) { n.copied = append(n.copied, detail) }

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func newTestApp(t *testing.T, opts ...Option) (*AppState, *recordSink, *recordSink) {
	t.Helper()
	save, cp := &recordSink{}, &recordSink{}
	s := annotate.NewSession(solid(200, 150, color.White))
	opts = append([]Option{WithSaveSink(save), WithCopySink(cp)}, opts...)
	return New(s, opts...), save, cp
}

// at converts image coordinates to window coordinates.
func at(a *AppState, x, y int) (float32, float32) {
	r := a.view().rect
	return float32(r.Min.X + x), float32(r.Min.Y + y)
}

func drag(a *AppState, from, to image.Point) {
	x, y := at(a, from.X, from.Y)
	a.handleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	mx, my := at(a, (from.X+to.X)/2, (from.Y+to.Y)/2)
	a.handleMouse(mouse.Event{X: mx, Y: my, Direction: mouse.DirNone})
	x, y = at(a, to.X, to.Y)
	a.handleMouse(mouse.Event{X: x, Y: y, Direction: mouse.DirNone})
	a.handleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func press(a *AppState, r rune, mods key.Modifiers) {
	a.handleKey(key.Event{Rune: r, Modifiers: mods, Direction: key.DirPress})
}

func TestFitView(t *testing.T) {
	area := image.Rect(50, 0, 450, 300)
	v := fitView(area, 200, 100)
	assert.Equal(t, 1.0, v.zoom)
	assert.Equal(t, image.Rect(50, 0, 250, 100), v.rect)

	v = fitView(area, 800, 300)
	assert.InDelta(t, 0.5, v.zoom, 1e-9)
	assert.Equal(t, image.Rect(50, 0, 450, 150), v.rect)

	p := v.unscale(annotate.Pt(150, 50))
	assert.InDelta(t, 250, p.X, 1e-9)
	assert.InDelta(t, 100, p.Y, 1e-9)
}

func TestEnsurePaletteColor(t *testing.T) {
	p, idx := ensurePaletteColor(Palette(), annotate.DefaultColor)
	assert.Len(t, p, len(defaultPalette))
	assert.Equal(t, "Red", p[idx].Name)

	p, idx = ensurePaletteColor(p, color.RGBA{0x12, 0x34, 0x56, 0xff})
	assert.Len(t, p, len(defaultPalette)+1)
	assert.Equal(t, "#123456", p[idx].Name)
}

func TestNewSizesWindowForImage(t *testing.T) {
	a, _, _ := newTestApp(t)
	assert.Equal(t, a.bar.width+200, a.width)
	assert.Equal(t, max(150, a.bar.height)+statusHeight, a.height)
	assert.Equal(t, "Red", a.Color().Name)
	assert.Equal(t, annotate.Pt(float64(a.bar.width), 0), a.session.Origin())
}

func TestKeyShortcuts(t *testing.T) {
	a, _, _ := newTestApp(t)
	cases := []struct {
		name string
		ev   key.Event
		want string
	}{
		{"pen", key.Event{Rune: 'p'}, "pen"},
		{"upper rect", key.Event{Rune: 'R'}, "rect"},
		{"crop", key.Event{Rune: 'c'}, "crop"},
		{"copy", key.Event{Rune: 'c', Modifiers: key.ModControl}, "copy"},
		{"save by code", key.Event{Rune: 0x13, Code: key.CodeS, Modifiers: key.ModControl}, "save"},
		{"undo with shift held", key.Event{Rune: 'z', Modifiers: key.ModControl | key.ModShift}, "undo"},
		{"escape", key.Event{Rune: -1, Code: key.CodeEscape}, "quit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := a.actionFor(tc.ev)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
	_, ok := a.actionFor(key.Event{Rune: 'x'})
	assert.False(t, ok)
}

func TestPenStrokeThroughMouse(t *testing.T) {
	a, _, _ := newTestApp(t)
	drag(a, image.Pt(10, 10), image.Pt(60, 40))

	pen := a.session.Tool(annotate.KindPen).(*annotate.Pen)
	require.Equal(t, 1, pen.Len())
	pts := pen.Strokes()[0].Points
	assert.Equal(t, annotate.Pt(10, 10), pts[0])
	assert.Equal(t, annotate.Pt(60, 40), pts[len(pts)-1])

	press(a, 'z', key.ModControl)
	assert.Equal(t, 0, pen.Len())
}

func TestPressOutsideImageIgnored(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.resize(a.width+100, a.height)
	r := a.view().rect
	a.handleMouse(mouse.Event{X: float32(r.Max.X + 20), Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.Equal(t, annotate.StateIdle, a.session.State())
}

func TestToolAndSwatchClicks(t *testing.T) {
	a, _, _ := newTestApp(t)

	rect := a.bar.tools[1].Rect()
	c := rect.Min.Add(image.Pt(2, 2))
	a.handleMouse(mouse.Event{X: float32(c.X), Y: float32(c.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.Equal(t, annotate.KindRectangle, a.session.Active().Kind())

	sw := a.bar.swatches[4].Min.Add(image.Pt(1, 1))
	a.handleMouse(mouse.Event{X: float32(sw.X), Y: float32(sw.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.Equal(t, "Blue", a.Color().Name)
	assert.Equal(t, annotate.ColorOf(color.RGBA{0, 0, 255, 255}), a.session.Color())
}

func TestSaveAndCopy(t *testing.T) {
	a, save, cp := newTestApp(t)
	drag(a, image.Pt(10, 10), image.Pt(60, 40))

	press(a, 's', key.ModControl)
	require.Len(t, save.images, 1)
	assert.Equal(t, image.Rect(0, 0, 200, 150), save.images[0].Bounds())

	press(a, 'c', key.ModControl)
	require.Len(t, cp.images, 1)
}

func TestSaveFailureShowsMessage(t *testing.T) {
	a, save, _ := newTestApp(t)
	save.err = errors.New("disk full")
	press(a, 's', key.ModControl)
	assert.Equal(t, "save failed", a.message)
	assert.True(t, a.messageVisible())
}

func TestDefaultSaveSinkWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shot.png")
	n := &recordNotifier{}
	s := annotate.NewSession(solid(20, 10, color.White))
	a := New(s, WithOutput(out), WithNotifier(n), WithCopySink(&recordSink{}))

	a.trigger("save")
	_, err := os.Stat(out)
	require.NoError(t, err)
	require.Len(t, n.saved, 1)
	assert.Equal(t, out, n.saved[0])
	assert.Equal(t, "saved "+out, a.message)
}

func TestCropThroughMouse(t *testing.T) {
	a, _, _ := newTestApp(t)
	press(a, 'c', 0)
	require.Equal(t, annotate.KindCrop, a.session.Active().Kind())

	drag(a, image.Pt(20, 30), image.Pt(120, 90))
	w, h := a.session.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 60, h)
	assert.Equal(t, "cropped to 100x60", a.message)
}

func TestEmptyCropCancels(t *testing.T) {
	a, _, _ := newTestApp(t)
	press(a, 'c', 0)
	drag(a, image.Pt(20, 30), image.Pt(20, 30))
	w, h := a.session.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 150, h)
	assert.Equal(t, "crop cancelled", a.message)
}

func TestMessageExpiresOnTick(t *testing.T) {
	a, _, _ := newTestApp(t)
	now := time.Unix(1000, 0)
	a.now = func() time.Time { return now }
	a.showMessage("hello")
	a.dirty = false

	assert.False(t, a.tick())
	now = now.Add(messageDuration + time.Millisecond)
	assert.True(t, a.tick())
	assert.Empty(t, a.message)
}

func TestClickDismissesMessage(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.showMessage("hello")
	x, y := at(a, 10, 10)
	a.handleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.False(t, a.messageVisible())
	assert.Equal(t, annotate.StateIdle, a.session.State())
}

func TestStatusBarShortcut(t *testing.T) {
	a, _, _ := newTestApp(t)
	var quitIdx = -1
	for i, sc := range a.shortcuts {
		if sc.label == "Q:quit" {
			quitIdx = i
		}
	}
	require.NotEqual(t, -1, quitIdx)
	c := a.shortcuts[quitIdx].rect.Min.Add(image.Pt(2, 2))
	a.handleMouse(mouse.Event{X: float32(c.X), Y: float32(c.Y), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	assert.True(t, a.quit)
}

func TestPaint(t *testing.T) {
	a, _, _ := newTestApp(t, WithTheme(theme.Dark()))
	drag(a, image.Pt(10, 10), image.Pt(60, 10))
	dst := image.NewRGBA(image.Rect(0, 0, a.width, a.height))
	a.paint(dst)

	assert.False(t, a.dirty)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(a.bar.width+150, 100))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, dst.RGBAAt(a.bar.width+30, 10))
	gap := a.bar.tools[len(a.bar.tools)-1].Rect().Max.Y + 1
	assert.Equal(t, a.theme.ToolbarBackground, dst.RGBAAt(1, gap))
}
