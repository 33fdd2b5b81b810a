package adjust

import (
	"testing"

	"github.com/example/photoedit/internal/raster"
)

func TestApplyZeroParamsLeavesBytes(t *testing.T) {
	pix := []uint8{0, 1, 2, 3, 127, 128, 129, 200, 255, 254, 10, 0}
	want := append([]uint8(nil), pix...)
	Apply(pix, Params{})
	for i := range pix {
		if pix[i] != want[i] {
			t.Fatalf("byte %d changed: got %d want %d", i, pix[i], want[i])
		}
	}
}

func TestApplyPinnedValues(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		in   [4]uint8
		want [4]uint8
	}{
		{"exposure doubles", Params{Exposure: 100}, [4]uint8{64, 64, 64, 255}, [4]uint8{128, 128, 128, 255}},
		{"exposure halves", Params{Exposure: -100}, [4]uint8{200, 100, 50, 255}, [4]uint8{100, 50, 25, 255}},
		{"brightness saturates", Params{Brightness: 100}, [4]uint8{10, 20, 30, 40}, [4]uint8{255, 255, 255, 40}},
		{"brightness floors", Params{Brightness: -100}, [4]uint8{10, 20, 30, 255}, [4]uint8{0, 0, 0, 255}},
		{"contrast flattens to midpoint", Params{Contrast: -100}, [4]uint8{0, 90, 255, 255}, [4]uint8{128, 128, 128, 255}},
		{"desaturate to luminance", Params{Saturation: -100}, [4]uint8{255, 0, 0, 255}, [4]uint8{76, 76, 76, 255}},
		{"highlights skip dark pixels", Params{Highlights: 80}, [4]uint8{10, 20, 30, 255}, [4]uint8{10, 20, 30, 255}},
		{"shadows skip bright pixels", Params{Shadows: 80}, [4]uint8{250, 240, 230, 255}, [4]uint8{250, 240, 230, 255}},
		{"clarity skips deep shadows", Params{Clarity: 100}, [4]uint8{5, 5, 5, 255}, [4]uint8{5, 5, 5, 255}},
		{"dehaze keeps neutral grey", Params{Dehaze: 70}, [4]uint8{90, 90, 90, 255}, [4]uint8{90, 90, 90, 255}},
		{"whites lift near-white", Params{Whites: 100}, [4]uint8{210, 210, 210, 255}, [4]uint8{235, 235, 235, 255}},
		{"whites skip midtones", Params{Whites: 100}, [4]uint8{128, 128, 128, 255}, [4]uint8{128, 128, 128, 255}},
		{"blacks crush near-black", Params{Blacks: -100}, [4]uint8{20, 20, 20, 255}, [4]uint8{8, 8, 8, 255}},
		{"vibrance boosts muted channels", Params{Vibrance: 50}, [4]uint8{200, 100, 100, 255}, [4]uint8{225, 88, 88, 255}},
		{"exposure runs before contrast", Params{Exposure: 100, Contrast: 50}, [4]uint8{100, 100, 100, 255}, [4]uint8{236, 236, 236, 255}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pix := tc.in
			Apply(pix[:], tc.p)
			if pix != tc.want {
				t.Fatalf("got %v want %v", pix, tc.want)
			}
		})
	}
}

func TestApplyNeverTouchesAlpha(t *testing.T) {
	p := Params{Exposure: 40, Brightness: -20, Contrast: 60, Highlights: 30, Shadows: -30,
		Whites: 50, Blacks: -50, Saturation: 70, Vibrance: 20, Clarity: 90, Dehaze: 10}
	pix := []uint8{10, 200, 90, 0, 255, 255, 255, 17, 0, 0, 0, 255, 128, 64, 32, 99}
	Apply(pix, p)
	for i, want := range []uint8{0, 17, 255, 99} {
		if got := pix[i*4+3]; got != want {
			t.Fatalf("alpha %d: got %d want %d", i, got, want)
		}
	}
}

func TestShadowsLiftDarkPixels(t *testing.T) {
	pix := []uint8{40, 40, 40, 255}
	Apply(pix, Params{Shadows: 100})
	if pix[0] <= 40 {
		t.Fatalf("expected dark pixel to brighten, got %d", pix[0])
	}
}

func TestBufferReturnsCopy(t *testing.T) {
	b := raster.New(2, 1)
	b.Fill([4]uint8{100, 100, 100, 255})
	out := Buffer(b, Params{Brightness: 50})
	if b.At(0, 0)[0] != 100 {
		t.Fatalf("source mutated: %v", b.At(0, 0))
	}
	if out.At(1, 0)[0] == 100 {
		t.Fatalf("copy not processed: %v", out.At(1, 0))
	}
}

func TestSetGet(t *testing.T) {
	var p Params
	for i, name := range Names() {
		if err := p.Set(name, float64(i+1)); err != nil {
			t.Fatalf("Set(%q): %v", name, err)
		}
	}
	if p.Dehaze != 11 || p.Exposure != 1 {
		t.Fatalf("unexpected params %+v", p)
	}
	if v, err := p.Get("Vibrance"); err != nil || v != 9 {
		t.Fatalf("Get(Vibrance) = %v, %v", v, err)
	}
	if err := p.Set("sharpness", 1); err == nil {
		t.Fatal("expected error for unknown slider")
	}
	if p.IsZero() {
		t.Fatal("IsZero true after Set")
	}
}
