package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// tickEvent is sent by the repaint ticker.
type tickEvent struct{}

// closeEvent asks the event loop to return.
type closeEvent struct{}

// Run executes the UI loop using shiny's driver and returns when the window
// closes or ctx is done.
func (a *AppState) Run(ctx context.Context) error {
	if a.session == nil {
		return errors.New("appstate: no session")
	}
	var err error
	driver.Main(func(s screen.Screen) { err = a.Main(ctx, s) })
	return err
}

// Main opens the window on s and processes events until it closes.
func (a *AppState) Main(ctx context.Context, s screen.Screen) error {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(repaintInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(tickEvent{})
			case <-ctx.Done():
				w.Send(closeEvent{})
				return
			case <-done:
				return
			}
		}
	}()

	for {
		switch e := w.NextEvent().(type) {
		case closeEvent:
			return ctx.Err()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case tickEvent:
			if a.tick() {
				w.Send(paint.Event{})
			}
		case paint.Event:
			drawFrame(s, w, a)
		case mouse.Event:
			a.handleMouse(e)
		case key.Event:
			a.handleKey(e)
		case error:
			log.Printf("window: %v", e)
		}
		if a.quit {
			return nil
		}
	}
}

func drawFrame(s screen.Screen, w screen.Window, a *AppState) {
	b, err := s.NewBuffer(image.Point{a.width, a.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	a.paint(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
