// Package imageio decodes source images and encodes the edited result.
package imageio

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultName is the file name used when exporting without one.
const DefaultName = "edited-image.png"

// ErrDecode wraps every failure to turn bytes into an image.
var ErrDecode = errors.New("decode image")

// Decode reads an image in any registered format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, "", fmt.Errorf("%w: image has no pixels", ErrDecode)
	}
	return img, format, nil
}

// LoadFile opens and decodes the file at path.
func LoadFile(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Result is delivered by LoadAsync.
type Result struct {
	Image image.Image
	Err   error
}

// Opener yields the bytes of an image.
type Opener func() (io.ReadCloser, error)

// FileOpener opens path for reading.
func FileOpener(path string) Opener {
	return func() (io.ReadCloser, error) { return os.Open(path) }
}

// LoadAsync decodes on a separate goroutine. The returned channel yields
// exactly one Result and is then closed. If ctx ends first the result
// carries ctx.Err().
func LoadAsync(ctx context.Context, open Opener) <-chan Result {
	out := make(chan Result, 1)
	done := make(chan Result, 1)
	go func() {
		done <- load(open)
	}()
	go func() {
		defer close(out)
		select {
		case res := <-done:
			out <- res
		case <-ctx.Done():
			out <- Result{Err: ctx.Err()}
		}
	}()
	return out
}

func load(open Opener) Result {
	if open == nil {
		return Result{Err: errors.New("no image source")}
	}
	rc, err := open()
	if err != nil {
		return Result{Err: err}
	}
	defer rc.Close()
	img, _, err := Decode(rc)
	return Result{Image: img, Err: err}
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return errors.New("no image to encode")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG returns img encoded as PNG bytes.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI returns img as a data:image/png;base64 URI.
func DataURI(img image.Image) (string, error) {
	data, err := PNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Save writes img as PNG into dir under name, defaulting to DefaultName,
// and returns the written path.
func Save(img image.Image, dir, name string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	path := name
	if dir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(dir, name)
	}
	if d := filepath.Dir(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", d, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodePNG(f, img); err != nil {
		if cerr := f.Close(); cerr != nil {
			return "", fmt.Errorf("%w (closing file: %v)", err, cerr)
		}
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
