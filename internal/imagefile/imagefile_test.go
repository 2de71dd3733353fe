package imagefile

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 60), B: 7, A: 255})
		}
	}
	return img
}

func TestWriteAndLoadPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")
	src := sample()

	written, err := WritePNG(path, src)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.Equal(t, src.Pix, got.Pix)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is cleaned up")
}

func TestLoadIgnoresExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, sample(), nil))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestLoadRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("hello there, not a picture"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sink.png")
	var saved string
	sink := &File{Path: path, Saved: func(p string) { saved = p }}
	require.NoError(t, sink.Put(sample()))
	assert.Equal(t, path, saved)
	assert.FileExists(t, path)

	assert.Error(t, (&File{}).Put(sample()))
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(sample())
	require.NoError(t, err)
	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sample().Pix, img.Pix)
}
