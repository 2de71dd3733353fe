package annotate

import "image"

// Sink receives a flattened image, for example a file or the clipboard.
type Sink interface {
	Put(img *image.RGBA) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(img *image.RGBA) error

func (f SinkFunc) Put(img *image.RGBA) error { return f(img) }
