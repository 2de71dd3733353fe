package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/scrann/internal/render"
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paint renders the whole window into dst.
func (a *AppState) paint(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{a.theme.Background}, image.Point{}, draw.Src)

	v := a.view()
	a.drawBackdrop(dst, v.rect)
	a.drawImage(dst, v)
	a.drawToolbar(dst)
	a.drawStatus(dst)
	if a.messageVisible() {
		a.drawMessage(dst)
	}
	a.dirty = false
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// drawBackdrop shows a cached checkerboard behind the image so transparent
// pixels stay visible.
func (a *AppState) drawBackdrop(dst *image.RGBA, r image.Rectangle) {
	if a.backdrop == nil || a.backdrop.Bounds().Size() != r.Size() {
		a.backdrop = image.NewRGBA(image.Rectangle{Max: r.Size()})
		drawCheckerboard(a.backdrop, a.backdrop.Bounds(), 8, a.theme.CheckerLight, a.theme.CheckerDark)
	}
	draw.Draw(dst, r, a.backdrop, image.Point{}, draw.Src)
}

func (a *AppState) drawImage(dst *image.RGBA, v view) {
	w, h := a.session.Size()
	if a.canvas == nil || a.canvas.Bounds().Dx() != w || a.canvas.Bounds().Dy() != h {
		a.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	a.session.Render(a.canvas, image.Point{})
	if v.zoom == 1 {
		draw.Draw(dst, v.rect, a.canvas, image.Point{}, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, v.rect, a.canvas, a.canvas.Bounds(), xdraw.Over, nil)
}

func (a *AppState) drawToolbar(dst *image.RGBA) {
	area := image.Rect(0, 0, a.bar.width, a.height-statusHeight)
	draw.Draw(dst, area, &image.Uniform{a.theme.ToolbarBackground}, image.Point{}, draw.Src)

	active := a.session.Active().Kind()
	for i, cb := range a.bar.tools {
		state := StateDefault
		if cb.Button.(*ToolButton).kind == active {
			state = StatePressed
		} else if i == a.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, r := range a.bar.swatches {
		draw.Draw(dst, r, &image.Uniform{a.palette[i].Color}, image.Point{}, draw.Src)
		if i == a.hoverSwatch {
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if i == a.colorIdx {
			strokeRect(dst, r, a.theme.Foreground)
			strokeRect(dst, r.Inset(1), a.theme.ToolbarBackground)
		} else {
			strokeRect(dst, r, a.theme.ButtonBorder)
		}
	}

	for i, cb := range a.bar.actions {
		state := StateDefault
		if i == a.hoverAction {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

// layoutStatus places the status bar hints along the bottom edge.
func (a *AppState) layoutStatus() {
	x := 4
	y := a.height - statusHeight + 16
	for i := range a.shortcuts {
		sc := &a.shortcuts[i]
		w := measure(sc.label)
		sc.rect = image.Rect(x-2, y-14, x+w+2, y+4)
		x = sc.rect.Max.X + 8
	}
}

func (a *AppState) drawStatus(dst *image.RGBA) {
	rect := image.Rect(0, a.height-statusHeight, a.width, a.height)
	draw.Draw(dst, rect, &image.Uniform{a.theme.ToolbarBackground}, image.Point{}, draw.Src)
	x := 4
	for i := range a.shortcuts {
		state := StateDefault
		if i == a.hoverShortcut {
			state = StateHover
		}
		a.shortcuts[i].draw(dst, a.theme, state)
		x = a.shortcuts[i].rect.Max.X + 8
	}
	w, h := a.session.Size()
	info := fmt.Sprintf("%s  %s  %dx%d", a.session.Active().Kind(), a.Color().Name, w, h)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(a.theme.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(x+8, a.height-statusHeight+16)}
	d.DrawString(info)
}

func (a *AppState) drawMessage(dst *image.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(a.theme.MessageText), Face: messageFace}
	wmsg := d.MeasureString(a.message).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (a.width - wmsg) / 2
	py := (a.height-ascent-descent)/2 + ascent
	rect := image.Rect(px-12, py-ascent-8, px+wmsg+12, py+descent+8)
	render.DrawShadow(dst, rect, render.PanelShadowOptions())
	draw.Draw(dst, rect, &image.Uniform{a.theme.MessageBackground}, image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(a.message)
}
