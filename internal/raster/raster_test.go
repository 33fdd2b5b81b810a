package raster

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCloneIsDeep(t *testing.T) {
	b := New(2, 1)
	b.Set(0, 0, [4]uint8{1, 2, 3, 4})
	c := b.Clone()
	c.Set(0, 0, [4]uint8{9, 9, 9, 9})
	if got := b.At(0, 0); got != [4]uint8{1, 2, 3, 4} {
		t.Fatalf("original changed to %v", got)
	}
	if !b.SameSize(c) || b.Equal(c) {
		t.Fatalf("clone should match size but not bytes")
	}
}

func TestNewClampsNegative(t *testing.T) {
	b := New(-3, 2)
	if b.Width != 0 || !b.Valid() || !b.Empty() {
		t.Fatalf("New(-3,2) = %+v", b)
	}
}

func TestCheckSize(t *testing.T) {
	b := New(3, 2)
	if err := b.CheckSize(3, 2); err != nil {
		t.Fatalf("CheckSize: %v", err)
	}
	if err := b.CheckSize(2, 3); err == nil {
		t.Fatalf("expected size mismatch")
	}
	b.Pix = b.Pix[:4]
	if err := b.CheckSize(3, 2); err == nil {
		t.Fatalf("expected invalid buffer error")
	}
}

func TestFromImageRebasesOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	img.SetNRGBA(11, 20, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	b := FromImage(img)
	if b.Width != 2 || b.Height != 1 {
		t.Fatalf("size = %dx%d", b.Width, b.Height)
	}
	if got := b.At(1, 0); got != [4]uint8{200, 100, 50, 128} {
		t.Fatalf("pixel = %v", got)
	}
	if got := b.NRGBA().NRGBAAt(1, 0); got.R != 200 || got.A != 128 {
		t.Fatalf("NRGBA view = %+v", got)
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(255, 0, 0); math.Abs(got-76.245) > 1e-9 {
		t.Fatalf("Luminance(red) = %v", got)
	}
	if got := Luminance(1, 1, 1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("Luminance(white) = %v", got)
	}
}
