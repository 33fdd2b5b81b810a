package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/photoedit/internal/raster"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestUnboundCanvasIgnoresCalls(t *testing.T) {
	var c Canvas
	c.Clear()
	c.DrawImage(solid(2, 2, color.NRGBA{A: 255}), 0)
	if _, ok := c.Extract(); ok {
		t.Fatal("Extract on unbound canvas reported ok")
	}
	if err := c.StrokeQuad(Pt(0, 0), Pt(1, 1), Pt(2, 2), Style{Width: 3}); err != nil {
		t.Fatalf("StrokeQuad: %v", err)
	}
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Fatalf("Size = %dx%d", w, h)
	}
}

func TestCommitRejectsWrongSize(t *testing.T) {
	c := New(4, 3)
	want := raster.New(4, 3)
	want.Fill([4]uint8{1, 2, 3, 4})
	if err := c.Commit(want); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	err := c.Commit(raster.New(3, 4))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
	got, ok := c.Extract()
	if !ok || !got.Equal(want) {
		t.Fatal("rejected commit modified the canvas")
	}
}

func TestExtractIsCopy(t *testing.T) {
	c := New(2, 2)
	b, _ := c.Extract()
	b.Fill([4]uint8{9, 9, 9, 9})
	if c.Image().Pix[0] != 0 {
		t.Fatal("Extract aliased canvas memory")
	}
}

func TestDrawImageScalesToCanvas(t *testing.T) {
	c := New(20, 10)
	red := color.NRGBA{R: 255, A: 255}
	c.DrawImage(solid(40, 20, red), 0)
	got := c.Image().NRGBAAt(10, 5)
	if !near(got.R, 255) || got.G != 0 || !near(got.A, 255) {
		t.Fatalf("centre pixel %+v, want opaque red", got)
	}
}

func TestDrawImageRotationsDoNotPanic(t *testing.T) {
	c := New(30, 20)
	src := solid(60, 40, color.NRGBA{G: 200, A: 255})
	for _, deg := range []float64{0, 90, 180, 270, 33, -45, 720} {
		c.Clear()
		c.DrawImage(src, deg)
		if w, h := c.Size(); w != 30 || h != 20 {
			t.Fatalf("rotation %v changed size to %dx%d", deg, w, h)
		}
		if got := c.Image().NRGBAAt(15, 10); got.A == 0 {
			t.Fatalf("rotation %v left centre empty", deg)
		}
	}
}

func TestStrokeQuadPaintsAlongCurve(t *testing.T) {
	c := New(24, 24)
	err := c.StrokeQuad(Pt(2, 12), Pt(12, 12), Pt(22, 12), Style{Width: 6, Color: color.NRGBA{R: 255, A: 255}})
	if err != nil {
		t.Fatalf("StrokeQuad: %v", err)
	}
	on := c.Image().NRGBAAt(12, 12)
	if on.R < 200 || on.A < 200 {
		t.Fatalf("pixel on stroke %+v, want red", on)
	}
	if off := c.Image().NRGBAAt(12, 2); off.A != 0 {
		t.Fatalf("pixel far from stroke %+v, want transparent", off)
	}
}

func TestStrokeQuadBlendsTranslucentColour(t *testing.T) {
	c := New(30, 30)
	b := raster.New(30, 30)
	b.Fill([4]uint8{255, 255, 255, 255})
	if err := c.Commit(b); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	err := c.StrokeQuad(Pt(5, 15), Pt(15, 15), Pt(25, 15), Style{Width: 10, Color: color.NRGBA{R: 255, A: 128}})
	if err != nil {
		t.Fatalf("StrokeQuad: %v", err)
	}
	got := c.Image().NRGBAAt(15, 15)
	within := func(v, want uint8) bool {
		d := int(v) - int(want)
		return d >= -2 && d <= 2
	}
	if !within(got.R, 255) || !within(got.G, 127) || !within(got.B, 127) || got.A != 255 {
		t.Fatalf("centre pixel %+v, want about {255 127 127 255}", got)
	}
}

func TestStrokeQuadRejectsZeroWidth(t *testing.T) {
	c := New(4, 4)
	if err := c.StrokeQuad(Pt(0, 0), Pt(1, 1), Pt(2, 2), Style{}); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestPointHelpers(t *testing.T) {
	p, q := Pt(0, 0), Pt(3, 4)
	if p.Dist(q) != 5 {
		t.Fatalf("Dist = %v", p.Dist(q))
	}
	if m := p.Mid(q); m != Pt(1.5, 2) {
		t.Fatalf("Mid = %v", m)
	}
}
