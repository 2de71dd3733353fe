// Package capture obtains a screenshot from the desktop and returns the path
// of the PNG it was written to.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var (
	// ErrCancelled is returned when the user dismisses the area selection.
	ErrCancelled = errors.New("screenshot cancelled")
	// ErrUnsupported is returned by a backend that cannot run in the
	// current session.
	ErrUnsupported = errors.New("screenshot backend unavailable")
)

// Options tunes a screenshot request.
type Options struct {
	// Interactive asks the desktop to let the user pick an area.
	Interactive bool
	// IncludeCursor embeds the pointer in the image where supported.
	IncludeCursor bool
}

// Backend is one way of producing a screenshot.
type Backend interface {
	Name() string
	// Screenshot writes a PNG and returns its path.
	Screenshot(ctx context.Context, opts Options) (string, error)
}

var backends = platformBackends

// Screenshot tries each backend available on this platform in turn and
// returns the first PNG produced. A cancelled selection is returned as is
// without trying further backends.
func Screenshot(ctx context.Context, opts Options) (string, error) {
	var errs []error
	for _, b := range backends() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		path, err := b.Screenshot(ctx, opts)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
			return "", err
		}
		log.Printf("capture: %s: %v", b.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}
	if len(errs) == 0 {
		return "", ErrUnsupported
	}
	return "", errors.Join(errs...)
}
