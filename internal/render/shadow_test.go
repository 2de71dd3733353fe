package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowBounds(t *testing.T) {
	r := image.Rect(10, 20, 50, 40)
	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := Shadow(r, opts)
	if out == nil {
		t.Fatal("expected shadow image")
	}
	want := image.Rect(6, 16, 54, 44).Add(opts.Offset)
	if !out.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), want)
	}
}

func TestShadowNothingWhenOpacityZero(t *testing.T) {
	if out := Shadow(image.Rect(0, 0, 4, 4), ShadowOptions{Radius: 2, Opacity: 0}); out != nil {
		t.Fatalf("expected no shadow, got bounds %v", out.Bounds())
	}
	if out := Shadow(image.Rectangle{}, PanelShadowOptions()); out != nil {
		t.Fatalf("expected no shadow for empty rect, got bounds %v", out.Bounds())
	}
}

func TestShadowBlurredEdge(t *testing.T) {
	r := image.Rect(0, 0, 40, 20)
	out := Shadow(r, ShadowOptions{Radius: 3, Opacity: 1})
	if out == nil {
		t.Fatal("expected shadow image")
	}
	center := out.RGBAAt(20, 10)
	if center.A < 250 {
		t.Fatalf("expected opaque shadow centre, got alpha %d", center.A)
	}
	if center.R != 0 || center.G != 0 || center.B != 0 {
		t.Fatalf("expected black shadow, got %+v", center)
	}
	edge := out.RGBAAt(r.Max.X, 10)
	if edge.A == 0 || edge.A >= center.A {
		t.Fatalf("expected blur to soften the edge, got alpha %d (centre %d)", edge.A, center.A)
	}
}

func TestDrawShadowOffset(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	white := color.RGBA{255, 255, 255, 255}
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 255, 255, 255, 255
	}
	DrawShadow(dst, image.Rect(5, 5, 15, 15), ShadowOptions{Offset: image.Pt(10, 10), Opacity: 1})
	if got := dst.RGBAAt(7, 7); got != white {
		t.Fatalf("shadow should not cover the panel origin, got %+v", got)
	}
	if got := dst.RGBAAt(20, 20); got.R != 0 {
		t.Fatalf("expected dark shadow at offset position, got %+v", got)
	}
}
