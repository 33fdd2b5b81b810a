// Package raster defines the interleaved RGBA byte buffer shared by the
// pixel-processing packages.
package raster

import (
	"fmt"
	"image"
	"image/draw"
)

// Luminance weights applied to red, green and blue.
const (
	WeightR = 0.299
	WeightG = 0.587
	WeightB = 0.114
)

// Buffer is a row-major array of straight (non-premultiplied) RGBA samples.
// Pix always holds Width*Height*4 bytes.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed buffer of the given size.
func New(width, height int) Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Buffer{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// Valid reports whether Pix matches the buffer dimensions.
func (b Buffer) Valid() bool {
	return b.Width >= 0 && b.Height >= 0 && len(b.Pix) == b.Width*b.Height*4
}

// Empty reports whether the buffer holds no pixels.
func (b Buffer) Empty() bool { return b.Width == 0 || b.Height == 0 }

// Clone returns an owned deep copy of b.
func (b Buffer) Clone() Buffer {
	out := Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// SameSize reports whether b and o describe the same dimensions.
func (b Buffer) SameSize(o Buffer) bool {
	return b.Width == o.Width && b.Height == o.Height
}

// Offset returns the index of the red sample of pixel (x, y).
func (b Buffer) Offset(x, y int) int { return (y*b.Width + x) * 4 }

// At returns the four samples of pixel (x, y).
func (b Buffer) At(x, y int) [4]uint8 {
	i := b.Offset(x, y)
	return [4]uint8{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// Set stores the four samples of pixel (x, y).
func (b Buffer) Set(x, y int, px [4]uint8) {
	i := b.Offset(x, y)
	copy(b.Pix[i:i+4], px[:])
}

// Fill sets every pixel to px.
func (b Buffer) Fill(px [4]uint8) {
	for i := 0; i+3 < len(b.Pix); i += 4 {
		copy(b.Pix[i:i+4], px[:])
	}
}

// Equal reports whether both buffers have the same size and bytes.
func (b Buffer) Equal(o Buffer) bool {
	if !b.SameSize(o) || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Luminance returns the perceptual brightness of r, g, b in their own scale.
func Luminance(r, g, b float64) float64 {
	return WeightR*r + WeightG*g + WeightB*b
}

// FromImage converts any image into a zero-origin buffer.
func FromImage(img image.Image) Buffer {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	return Buffer{Width: bounds.Dx(), Height: bounds.Dy(), Pix: nrgba.Pix}
}

// NRGBA exposes the buffer as an image without copying.
func (b Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{Pix: b.Pix, Stride: b.Width * 4, Rect: image.Rect(0, 0, b.Width, b.Height)}
}

// CheckSize returns an error when b does not match the requested size.
func (b Buffer) CheckSize(width, height int) error {
	if !b.Valid() {
		return fmt.Errorf("raster: buffer holds %d bytes for %dx%d", len(b.Pix), b.Width, b.Height)
	}
	if b.Width != width || b.Height != height {
		return fmt.Errorf("raster: buffer is %dx%d, want %dx%d", b.Width, b.Height, width, height)
	}
	return nil
}
