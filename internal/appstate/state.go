package appstate

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/scrann/internal/annotate"
	"github.com/example/scrann/internal/clipboard"
	"github.com/example/scrann/internal/imagefile"
	"github.com/example/scrann/internal/theme"
)

// ProgramTitle is the window title prefix.
const ProgramTitle = "Scrann"

const (
	messageDuration = 2 * time.Second
	repaintInterval = 50 * time.Millisecond
)

// Notifier receives export notifications.
type Notifier interface {
	Save(path string)
	Copy(detail string)
}

// AppState hosts one annotation session in a window.
type AppState struct {
	session  *annotate.Session
	output   string
	title    string
	theme    *theme.Theme
	notifier Notifier
	saveSink annotate.Sink
	copySink annotate.Sink

	onClose   func()
	closeOnce sync.Once

	palette  []PaletteColor
	colorIdx int

	bar       *toolbar
	shortcuts []Shortcut
	keys      map[KeyShortcut]string
	actions   map[string]func()

	width, height int
	canvas        *image.RGBA
	backdrop      *image.RGBA

	hoverTool     int
	hoverSwatch   int
	hoverAction   int
	hoverShortcut int

	message      string
	messageUntil time.Time
	dirty        bool
	quit         bool

	now func() time.Time
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithOutput sets the file written by the save action.
func WithOutput(path string) Option { return func(a *AppState) { a.output = path } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.title = title } }

// WithTheme sets the toolbar colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithNotifier reports saves and copies through n.
func WithNotifier(n Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithSaveSink replaces the file sink used by the save action.
func WithSaveSink(s annotate.Sink) Option { return func(a *AppState) { a.saveSink = s } }

// WithCopySink replaces the clipboard sink used by the copy action.
func WithCopySink(s annotate.Sink) Option { return func(a *AppState) { a.copySink = s } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState around session.
func New(session *annotate.Session, opts ...Option) *AppState {
	a := &AppState{
		session:       session,
		title:         ProgramTitle,
		theme:         theme.Default(),
		palette:       Palette(),
		hoverTool:     -1,
		hoverSwatch:   -1,
		hoverAction:   -1,
		hoverShortcut: -1,
		now:           time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	if a.saveSink == nil {
		a.saveSink = &imagefile.File{Path: a.output, Saved: a.saved}
	}
	if a.copySink == nil {
		a.copySink = &clipboard.Sink{Copied: a.copied}
	}
	a.palette, a.colorIdx = ensurePaletteColor(a.palette, session.Color())
	a.configure()
	w, h := a.preferredSize()
	a.resize(w, h)
	return a
}

// configure builds the toolbar and registers actions with their shortcuts.
func (a *AppState) configure() {
	a.actions = map[string]func(){}
	a.keys = map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		a.actions[name] = fn
		if keys == nil {
			return
		}
		for _, sc := range keys.KeyboardShortcuts() {
			a.keys[sc] = name
		}
	}

	register("pen", shortcutList{{Rune: 'p'}}, func() { a.selectTool(annotate.KindPen) })
	register("rect", shortcutList{{Rune: 'r'}}, func() { a.selectTool(annotate.KindRectangle) })
	register("crop", shortcutList{{Rune: 'c'}}, func() { a.selectTool(annotate.KindCrop) })
	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}, {Code: key.CodeZ, Modifiers: key.ModControl}}, a.undo)
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}, {Code: key.CodeS, Modifiers: key.ModControl}}, a.save)
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}, {Code: key.CodeC, Modifiers: key.ModControl}}, a.copy)
	register("quit", shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}}, func() { a.quit = true })

	labels := map[annotate.Kind]string{
		annotate.KindPen:       "P:Pen",
		annotate.KindRectangle: "R:Rect",
		annotate.KindCrop:      "C:Crop",
	}
	a.bar = &toolbar{}
	var all []string
	for _, t := range a.session.Tools() {
		lbl := labels[t.Kind()]
		all = append(all, lbl)
		a.bar.tools = append(a.bar.tools, &CacheButton{Button: &ToolButton{
			labelButton: labelButton{label: lbl, theme: a.theme},
			kind:        t.Kind(),
			onSelect:    a.selectTool,
		}})
	}
	for _, act := range []struct{ label, name string }{
		{"Undo", "undo"},
		{"Save", "save"},
		{"Copy", "copy"},
	} {
		all = append(all, act.label)
		fn := a.actions[act.name]
		a.bar.actions = append(a.bar.actions, &CacheButton{Button: &ActionButton{
			labelButton: labelButton{label: act.label, theme: a.theme},
			onActivate:  fn,
		}})
	}
	a.bar.width = toolbarWidthFor(append(all, ProgramTitle))
	a.bar.layout(len(a.palette))

	a.shortcuts = nil
	for _, sc := range []struct{ label, name string }{
		{"P:pen", "pen"},
		{"R:rect", "rect"},
		{"C:crop", "crop"},
		{"^Z:undo", "undo"},
		{"^S:save", "save"},
		{"^C:copy", "copy"},
		{"Q:quit", "quit"},
	} {
		name := sc.name
		a.shortcuts = append(a.shortcuts, Shortcut{label: sc.label, action: func() { a.trigger(name) }})
	}
}

// preferredSize is the window size that shows the image unscaled.
func (a *AppState) preferredSize() (int, int) {
	w, h := a.session.Size()
	width := a.bar.width + w
	height := h
	if a.bar.height > height {
		height = a.bar.height
	}
	return width, height + statusHeight
}

func (a *AppState) resize(w, h int) {
	a.width, a.height = w, h
	a.layoutView()
	a.layoutStatus()
	a.dirty = true
}

// layoutView keeps the session origin on the image's on-screen corner.
func (a *AppState) layoutView() {
	v := a.view()
	a.session.SetOrigin(annotate.Pt(float64(v.rect.Min.X), float64(v.rect.Min.Y)))
}

func (a *AppState) view() view {
	w, h := a.session.Size()
	area := image.Rect(a.bar.width, 0, a.width, a.height-statusHeight)
	return fitView(area, w, h)
}

// Color returns the selected palette entry.
func (a *AppState) Color() PaletteColor { return a.palette[a.colorIdx] }

func (a *AppState) selectColor(idx int) {
	if idx < 0 || idx >= len(a.palette) {
		return
	}
	a.colorIdx = idx
	a.session.SetColor(annotate.ColorOf(a.palette[idx].Color))
	a.dirty = true
}

func (a *AppState) selectTool(k annotate.Kind) {
	if err := a.session.SelectTool(k); err != nil {
		log.Printf("select tool: %v", err)
		return
	}
	a.dirty = true
}

func (a *AppState) undo() {
	a.session.Undo()
	a.dirty = true
}

func (a *AppState) save() {
	if err := a.session.Export(a.saveSink); err != nil {
		log.Printf("save: %v", err)
		a.showMessage("save failed")
	}
}

func (a *AppState) copy() {
	if err := a.session.Export(a.copySink); err != nil {
		log.Printf("copy: %v", err)
		a.showMessage("copy failed")
	}
}

func (a *AppState) saved(path string) {
	a.showMessage(fmt.Sprintf("saved %s", path))
	if a.notifier != nil {
		a.notifier.Save(path)
	}
}

func (a *AppState) copied() {
	a.showMessage("image copied to clipboard")
	if a.notifier != nil {
		a.notifier.Copy("image")
	}
}

func (a *AppState) showMessage(msg string) {
	log.Print(msg)
	a.message = msg
	a.messageUntil = a.now().Add(messageDuration)
	a.dirty = true
}

func (a *AppState) messageVisible() bool {
	return a.message != "" && a.now().Before(a.messageUntil)
}

// tick is called by the repaint ticker. It reports whether a repaint is due.
func (a *AppState) tick() bool {
	if a.message != "" && !a.messageVisible() {
		a.message = ""
		a.dirty = true
	}
	return a.dirty
}

// trigger runs a named action.
func (a *AppState) trigger(name string) {
	if fn, ok := a.actions[name]; ok {
		fn()
	}
	a.dirty = true
}

// handleKey runs the action bound to a key press.
func (a *AppState) handleKey(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	if action, ok := a.actionFor(e); ok {
		a.trigger(action)
	}
}

func (a *AppState) actionFor(e key.Event) (string, bool) {
	mods := e.Modifiers & (key.ModControl | key.ModAlt | key.ModMeta)
	if e.Rune > 0 {
		if action, ok := a.keys[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return action, true
		}
	}
	if e.Code != key.CodeUnknown {
		action, ok := a.keys[KeyShortcut{Code: e.Code, Modifiers: mods}]
		return action, ok
	}
	return "", false
}

// handleMouse routes pointer input to the chrome or the session.
func (a *AppState) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	if a.session.State() == annotate.StateDrawing {
		switch e.Direction {
		case mouse.DirNone:
			a.session.Move(a.toView(e.X, e.Y))
			a.dirty = true
		case mouse.DirRelease:
			if e.Button == mouse.ButtonLeft {
				a.release(a.toView(e.X, e.Y))
			}
		}
		return
	}

	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	if press && a.messageVisible() {
		a.messageUntil = time.Time{}
		a.message = ""
		a.dirty = true
		return
	}

	if p.Y >= a.height-statusHeight {
		a.hoverShortcut = -1
		for i := range a.shortcuts {
			if p.In(a.shortcuts[i].rect) {
				a.hoverShortcut = i
				if press {
					a.shortcuts[i].Activate()
				}
				break
			}
		}
		a.dirty = true
		return
	}
	a.hoverShortcut = -1

	if p.X < a.bar.width {
		kind, idx := a.bar.hit(p)
		a.hoverTool, a.hoverSwatch, a.hoverAction = -1, -1, -1
		switch kind {
		case hitTool:
			a.hoverTool = idx
			if press {
				a.bar.tools[idx].Activate()
			}
		case hitSwatch:
			a.hoverSwatch = idx
			if press {
				a.selectColor(idx)
			}
		case hitAction:
			a.hoverAction = idx
			if press {
				a.bar.actions[idx].Activate()
			}
		}
		a.dirty = true
		return
	}
	if a.hoverTool != -1 || a.hoverSwatch != -1 || a.hoverAction != -1 {
		a.hoverTool, a.hoverSwatch, a.hoverAction = -1, -1, -1
		a.dirty = true
	}

	if press && p.In(a.view().rect) {
		a.session.Press(a.toView(e.X, e.Y))
		a.dirty = true
	}
}

func (a *AppState) release(p annotate.Point) {
	kind := a.session.Active().Kind()
	err := a.session.Release(p)
	a.dirty = true
	switch {
	case errors.Is(err, annotate.ErrEmptySelection):
		a.showMessage("crop cancelled")
	case err != nil:
		log.Printf("release: %v", err)
		a.showMessage(err.Error())
	case kind == annotate.KindCrop:
		w, h := a.session.Size()
		a.canvas = nil
		a.layoutView()
		a.showMessage(fmt.Sprintf("cropped to %dx%d", w, h))
	}
}

// toView maps window coordinates to the unscaled view coordinates the
// session expects.
func (a *AppState) toView(x, y float32) annotate.Point {
	return a.view().unscale(annotate.Pt(float64(x), float64(y)))
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}
