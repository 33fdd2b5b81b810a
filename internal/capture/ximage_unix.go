//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// xImageToNRGBA converts a ZPixmap reply in BGRx byte order. Pixels are
// forced opaque since X11 leaves the padding byte undefined on 24-bit visuals.
func xImageToNRGBA(formats []xproto.Format, reply *xproto.GetImageReply, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("root window has empty geometry")
	}
	if reply == nil || len(reply.Data) == 0 {
		return nil, fmt.Errorf("root window pixels: empty image data")
	}

	bitsPerPixel := 0
	for _, format := range formats {
		if format.Depth == reply.Depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	if bitsPerPixel == 0 {
		return nil, fmt.Errorf("unsupported depth %d", reply.Depth)
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported pixel format %d bpp", bitsPerPixel)
	}

	stride := len(reply.Data) / height
	if stride*height != len(reply.Data) || stride < width*bytesPerPixel {
		return nil, fmt.Errorf("root window pixels: unexpected stride")
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := reply.Data[y*stride : (y+1)*stride]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			off := x * bytesPerPixel
			d := x * 4
			dst[d+0] = row[off+2]
			dst[d+1] = row[off+1]
			dst[d+2] = row[off]
			dst[d+3] = 0xff
		}
	}
	return img, nil
}
