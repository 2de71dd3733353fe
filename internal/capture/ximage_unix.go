//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// xImageToRGBA converts a ZPixmap GetImage reply in little-endian BGR(X)
// order. Depths of 24 or less carry no alpha, so those pixels are opaque.
func xImageToRGBA(formats []xproto.Format, reply *xproto.GetImageReply, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has empty geometry")
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("image pixels: empty reply")
	}
	var format *xproto.Format
	for i := range formats {
		if formats[i].Depth == reply.Depth {
			format = &formats[i]
			break
		}
	}
	if format == nil {
		return nil, fmt.Errorf("unsupported depth %d", reply.Depth)
	}
	bpp := int(format.BitsPerPixel) / 8
	if bpp < 3 {
		return nil, fmt.Errorf("unsupported pixel format %d bpp", format.BitsPerPixel)
	}
	pad := int(format.ScanlinePad)
	if pad == 0 {
		pad = 8
	}
	stride := (width*int(format.BitsPerPixel) + pad - 1) / pad * pad / 8
	if len(reply.Data) < stride*height {
		return nil, fmt.Errorf("image pixels: have %d bytes, want %d", len(reply.Data), stride*height)
	}
	hasAlpha := reply.Depth == 32 && bpp == 4

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := reply.Data[y*stride : y*stride+width*bpp]
		dst := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			s, d := src[x*bpp:], dst[x*4:]
			d[0], d[1], d[2], d[3] = s[2], s[1], s[0], 0xff
			if hasAlpha {
				d[3] = s[3]
			}
		}
	}
	return img, nil
}
