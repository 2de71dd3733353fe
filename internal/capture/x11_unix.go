//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/example/scrann/internal/imagefile"
)

// x11Backend grabs the whole root window. There is no area picker; the
// editor's crop tool takes its place.
type x11Backend struct{}

func (x11Backend) Name() string { return "x11" }

func (x11Backend) Screenshot(ctx context.Context, _ Options) (string, error) {
	if runningOnWayland() {
		return "", ErrUnsupported
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return "", fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return "", fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return "", fmt.Errorf("xproto screen unavailable")
	}
	width, height := screen.WidthInPixels, screen.HeightInPixels
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		0, 0, width, height, ^uint32(0)).Reply()
	if err != nil {
		return "", fmt.Errorf("root pixels: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	img, err := xImageToRGBA(setup.PixmapFormats, reply, int(width), int(height))
	if err != nil {
		return "", err
	}
	path := filepath.Join(os.TempDir(), "scrann-"+uuid.NewString()+".png")
	return imagefile.WritePNG(path, img)
}
