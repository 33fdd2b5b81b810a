// Package clipboard moves images and text between the editor and the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/example/photoedit/internal/imageio"
)

var (
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errCGODisabled = errors.New("clipboard operations require cgo support")
	errUnsupported = errors.New("clipboard operations are not supported on this platform")
	errNoImageData = errors.New("clipboard does not contain image data")
	errNoTextData  = errors.New("clipboard does not contain text data")
)

// displayAvailable reports whether a graphical session is reachable. Only
// X11 and Wayland hosts need an explicit display.
func displayAvailable() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodeImage(img image.Image) ([]byte, error) {
	data, err := imageio.PNG(img)
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return data, nil
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errNoImageData
	}
	img, _, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return img, nil
}
