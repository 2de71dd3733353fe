package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
)

// DefaultRetries is the number of capture attempts made before giving up.
const DefaultRetries = 3

// ErrRetriesExhausted is returned when every capture attempt failed.
var ErrRetriesExhausted = errors.New("capture failed")

// Acquirer obtains a screenshot path, retrying failed attempts and
// reporting progress through Notify.
type Acquirer struct {
	// Capture produces the screenshot. Nil uses Screenshot with an
	// interactive area selection.
	Capture func(ctx context.Context) (string, error)
	// Notify receives user-facing progress messages. It may be nil.
	Notify func(body string)
	// Retries is the number of attempts. Values below one use
	// DefaultRetries.
	Retries int
}

// Acquire runs the capture until it succeeds or the attempts run out.
func (a *Acquirer) Acquire(ctx context.Context) (string, error) {
	capture := a.Capture
	if capture == nil {
		capture = func(ctx context.Context) (string, error) {
			return Screenshot(ctx, Options{Interactive: true})
		}
	}
	retries := a.Retries
	if retries < 1 {
		retries = DefaultRetries
	}
	var last error
	for attempt := 1; attempt <= retries; attempt++ {
		path, err := capture(ctx)
		if err == nil {
			return path, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		last = err
		log.Printf("capture attempt %d/%d: %v", attempt, retries, err)
		if attempt < retries {
			a.notify("Selecting area failed, try again")
		}
	}
	a.notify(fmt.Sprintf("Selecting area failed %d times, giving up", retries))
	return "", fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, retries, last)
}

func (a *Acquirer) notify(body string) {
	if a.Notify != nil {
		a.Notify(body)
	}
}

// Resolve returns path when it names an existing file. Otherwise a new
// screenshot is acquired; a path that was given but does not exist is
// logged first.
func Resolve(ctx context.Context, path string, a *Acquirer) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		log.Printf("%s not found, capturing new screenshot", path)
	}
	if a == nil {
		a = &Acquirer{}
	}
	return a.Acquire(ctx)
}
