// Package imagefile loads raster images from disk and writes PNG output.
package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/clone"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when a file's content is not a supported image.
var ErrNotImage = errors.New("not an image")

// Load reads the image at path. The format is detected from the file
// content, not its extension.
func Load(path string) (*image.RGBA, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", path, err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return img, nil
}

// Decode decodes an in-memory image and returns it as RGBA anchored at the
// origin.
func Decode(data []byte) (*image.RGBA, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	kind, _ := filetype.Match(data)
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.Extension, err)
	}
	rgba := clone.AsRGBA(src)
	rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	return rgba, nil
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG writes img to path as a PNG. The file is replaced atomically so a
// failed write never leaves a truncated image behind. It returns the
// absolute path written.
func WritePNG(path string, img image.Image) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, ".scrann-*.png")
	if err != nil {
		return "", err
	}
	defer func() {
		if _, err := os.Stat(tmp.Name()); err == nil {
			if err := os.Remove(tmp.Name()); err != nil {
				log.Printf("error removing %q: %v", tmp.Name(), err)
			}
		}
	}()
	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return "", err
	}
	return p, nil
}

// File is an export sink that writes PNG files.
type File struct {
	Path string
	// Saved, if set, is called with the absolute path after each write.
	Saved func(path string)
}

func (f *File) Put(img *image.RGBA) error {
	if f.Path == "" {
		return errors.New("no output path")
	}
	p, err := WritePNG(f.Path, img)
	if err != nil {
		return err
	}
	if f.Saved != nil {
		f.Saved(p)
	}
	return nil
}
