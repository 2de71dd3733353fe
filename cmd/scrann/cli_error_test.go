package main

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/example/scrann/internal/appstate"
	"github.com/example/scrann/internal/capture"
	"github.com/example/scrann/internal/config"
)

func testRoot() *root {
	return &root{program: "scrann", config: config.New()}
}

func TestAnnotateRunCaptureError(t *testing.T) {
	original := resolveFn
	sentinel := errors.New("denied")
	var gotRetries int
	resolveFn = func(_ context.Context, path string, a *capture.Acquirer) (string, error) {
		gotRetries = a.Retries
		return "", sentinel
	}
	t.Cleanup(func() { resolveFn = original })

	cmd, err := parseAnnotateCmd([]string{"missing.png"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "capture screenshot"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected message context, got %v", err)
		}
	}
	if gotRetries != config.DefaultCaptureRetries {
		t.Fatalf("expected retries from config, got %d", gotRetries)
	}
}

func TestAnnotateClipboardNeedsOutput(t *testing.T) {
	original := readClipboardFn
	readClipboardFn = func() (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil }
	t.Cleanup(func() { readClipboardFn = original })
	originalUI := runUIFn
	runUIFn = func(context.Context, *appstate.AppState) error {
		t.Fatalf("window should not open")
		return nil
	}
	t.Cleanup(func() { runUIFn = originalUI })

	cmd, err := parseAnnotateCmd([]string{"-from-clipboard"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	} else if want := "-output is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseAnnotateClipboardWithFile(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"-from-clipboard", "shot.png"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "cannot be used"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseAnnotateTooManyFiles(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"a.png", "b.png"}, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Usage: scrann annotate") {
		t.Fatalf("expected annotate help, got %q", err.Error())
	}
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "rect:0,0:1,1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRequiresInput(t *testing.T) {
	_, err := parseDrawCmd([]string{"rect:0,0:1,1"}, nil)
	if err == nil || !strings.Contains(err.Error(), "input file is required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	r := newRoot()
	err := r.Run(context.Background(), []string{"frobnicate"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "annotate") {
		t.Fatalf("expected command list in help, got %q", err.Error())
	}
}
