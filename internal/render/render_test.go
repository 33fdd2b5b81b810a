package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/raster"
	"github.com/example/photoedit/internal/surface"
)

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, mw, mh int
		ww, wh       int
	}{
		{400, 300, 800, 600, 400, 300},
		{1600, 1200, 800, 600, 800, 600},
		{1600, 400, 800, 600, 800, 200},
		{400, 1600, 800, 600, 150, 600},
		{2000, 1000, 800, 600, 800, 400},
		{1000, 2000, 800, 600, 300, 600},
		{10000, 1, 800, 600, 800, 1},
		{1601, 1000, 800, 600, 800, 499},
		{1000, 1201, 800, 600, 499, 600},
		{0, 10, 800, 600, 0, 0},
		{300, 200, 0, 0, 300, 200},
	}
	for _, tc := range tests {
		w, h := Fit(tc.w, tc.h, tc.mw, tc.mh)
		if w != tc.ww || h != tc.wh {
			t.Errorf("Fit(%d,%d,%d,%d) = %d,%d want %d,%d", tc.w, tc.h, tc.mw, tc.mh, w, h, tc.ww, tc.wh)
		}
	}
}

func TestNormalizeRotation(t *testing.T) {
	for in, want := range map[float64]float64{0: 0, 90: 90, 360: 0, 450: 90, -90: 270, -720: 0} {
		if got := NormalizeRotation(in); got != want {
			t.Errorf("NormalizeRotation(%v) = %v want %v", in, got, want)
		}
	}
}

type countingSurface struct {
	*surface.Canvas
	extracts int
	commits  int
}

func (c *countingSurface) Extract() (raster.Buffer, bool) {
	c.extracts++
	return c.Canvas.Extract()
}

func (c *countingSurface) Commit(b raster.Buffer) error {
	c.commits++
	return c.Canvas.Commit(b)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestRenderSkipsPixelPassWhenInactive(t *testing.T) {
	s := &countingSurface{Canvas: surface.New(1, 1)}
	p := NewPipeline(0, 0)
	img := gradient(30, 20)
	if err := p.Setup(s, Frame{Image: img, Filter: filter.None}); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if s.extracts != 0 || s.commits != 0 {
		t.Fatalf("inactive render touched buffer: extracts=%d commits=%d", s.extracts, s.commits)
	}

	ref := surface.New(30, 20)
	ref.DrawImage(img, 0)
	want, _ := ref.Extract()
	got, _ := s.Canvas.Extract()
	if !got.Equal(want) {
		t.Fatal("inactive render differs from a plain draw")
	}
	if p.Passes() != 0 || p.Renders() != 1 {
		t.Fatalf("passes=%d renders=%d", p.Passes(), p.Renders())
	}
}

func TestRenderRunsAdjustThenFilter(t *testing.T) {
	s := surface.New(1, 1)
	p := NewPipeline(0, 0)
	img := gradient(8, 8)
	f := Frame{Image: img, Params: adjust.Params{Brightness: 20}, Filter: filter.Invert}
	if err := p.Setup(s, f); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	ref := surface.New(8, 8)
	ref.DrawImage(img, 0)
	want, _ := ref.Extract()
	adjust.Apply(want.Pix, f.Params)
	filter.Apply(want.Pix, f.Filter)
	got, _ := s.Extract()
	if !got.Equal(want) {
		t.Fatal("pipeline output differs from adjust then filter")
	}
	if p.Passes() != 1 {
		t.Fatalf("passes = %d", p.Passes())
	}
}

func TestRenderWithoutSurfaceOrImage(t *testing.T) {
	p := NewPipeline(0, 0)
	if err := p.Render(nil, Frame{Image: gradient(2, 2)}); err != nil {
		t.Fatalf("Render(nil): %v", err)
	}
	if err := p.Render(&surface.Canvas{}, Frame{Image: gradient(2, 2)}); err != nil {
		t.Fatalf("Render(unbound): %v", err)
	}
	if err := p.Render(surface.New(2, 2), Frame{}); err != nil {
		t.Fatalf("Render(no image): %v", err)
	}
	if p.Renders() != 0 {
		t.Fatalf("renders = %d", p.Renders())
	}
}

func TestRotationKeepsFittedSize(t *testing.T) {
	img := gradient(1600, 900)
	for _, deg := range []float64{90, 180, 270, 45, 123.5, -30} {
		s := surface.New(1, 1)
		p := NewPipeline(DefaultMaxWidth, DefaultMaxHeight)
		if err := p.Setup(s, Frame{Image: img, Rotation: deg}); err != nil {
			t.Fatalf("Setup(%v): %v", deg, err)
		}
		w, h := s.Size()
		if w > 800 || h > 600 {
			t.Fatalf("rotation %v: %dx%d exceeds bounds", deg, w, h)
		}
		if w != 800 || h != 450 {
			t.Fatalf("rotation %v: %dx%d, want 800x450", deg, w, h)
		}
		if err := p.Render(s, Frame{Image: img, Rotation: deg, Filter: filter.Sepia}); err != nil {
			t.Fatalf("Render(%v): %v", deg, err)
		}
	}
}
