// Package filter holds the fixed, non-parametric preset colour transforms.
package filter

import (
	"fmt"
	"math"
	"strings"

	"github.com/example/photoedit/internal/raster"
)

// Preset names one of the colour transforms.
type Preset string

const (
	None      Preset = "none"
	Grayscale Preset = "grayscale"
	Sepia     Preset = "sepia"
	Invert    Preset = "invert"
	Vintage   Preset = "vintage"
	Cool      Preset = "cool"
	Warm      Preset = "warm"
	Dramatic  Preset = "dramatic"
	Soft      Preset = "soft"
	Vivid     Preset = "vivid"
	Noir      Preset = "noir"
	Sunset    Preset = "sunset"
	Arctic    Preset = "arctic"
	Emerald   Preset = "emerald"
	Rose      Preset = "rose"
	Cyberpunk Preset = "cyberpunk"
)

var presets = []Preset{
	None, Grayscale, Sepia, Invert, Vintage, Cool, Warm, Dramatic,
	Soft, Vivid, Noir, Sunset, Arctic, Emerald, Rose, Cyberpunk,
}

// All returns every preset in display order, None first.
func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Parse resolves a preset name. The empty string maps to None.
func Parse(s string) (Preset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}
	for _, p := range presets {
		if string(p) == s {
			return p, nil
		}
	}
	return None, fmt.Errorf("unknown filter %q", s)
}

// String implements fmt.Stringer.
func (p Preset) String() string { return string(p) }

type transform func(r, g, b float64) (float64, float64, float64)

var transforms = map[Preset]transform{
	Grayscale: func(r, g, b float64) (float64, float64, float64) {
		l := raster.Luminance(r, g, b)
		return l, l, l
	},
	Sepia: sepia,
	Invert: func(r, g, b float64) (float64, float64, float64) {
		return 255 - r, 255 - g, 255 - b
	},
	Vintage: func(r, g, b float64) (float64, float64, float64) {
		r, g, b = sepia(r, g, b)
		return clamp(r) * 1.1, clamp(g) * 0.9, clamp(b) * 0.7
	},
	Cool: scale(0.8, 1.1, 1.3),
	Warm: scale(1.3, 1.1, 0.8),
	Dramatic: func(r, g, b float64) (float64, float64, float64) {
		l := raster.Luminance(r, g, b)
		r, g, b = around(r, g, b, l, 0.8)
		return around(r, g, b, 128, 1.5)
	},
	Soft: func(r, g, b float64) (float64, float64, float64) {
		return r*0.9 + 30, g*0.9 + 25, b*0.95 + 35
	},
	Vivid: func(r, g, b float64) (float64, float64, float64) {
		return around(r, g, b, raster.Luminance(r, g, b), 1.4)
	},
	Noir: func(r, g, b float64) (float64, float64, float64) {
		l := (raster.Luminance(r, g, b)-128)*1.8 + 128
		return l, l, l
	},
	Sunset: scale(1.4, 1.2, 0.6),
	Arctic: func(r, g, b float64) (float64, float64, float64) {
		return r*0.9 + 20, g + 15, b*1.2 + 10
	},
	Emerald: scale(0.7, 1.3, 0.9),
	Rose:    scale(1.2, 0.9, 1.1),
	Cyberpunk: func(r, g, b float64) (float64, float64, float64) {
		if raster.Luminance(r, g, b) < 128 {
			return r * 1.3, g * 0.8, b * 1.5
		}
		return r * 0.8, g * 1.2, b * 1.4
	},
}

func sepia(r, g, b float64) (float64, float64, float64) {
	return 0.393*r + 0.769*g + 0.189*b,
		0.349*r + 0.686*g + 0.168*b,
		0.272*r + 0.534*g + 0.131*b
}

func scale(fr, fg, fb float64) transform {
	return func(r, g, b float64) (float64, float64, float64) {
		return r * fr, g * fg, b * fb
	}
}

func around(r, g, b, anchor, f float64) (float64, float64, float64) {
	return anchor + (r-anchor)*f, anchor + (g-anchor)*f, anchor + (b-anchor)*f
}

// Known reports whether p has a transform or is None.
func Known(p Preset) bool {
	if p == None {
		return true
	}
	_, ok := transforms[p]
	return ok
}

// Apply transforms pix in place. None leaves pix untouched. Passing a preset
// that Parse would reject is a programming error and panics.
func Apply(pix []uint8, p Preset) {
	if p == None {
		return
	}
	fn, ok := transforms[p]
	if !ok {
		panic(fmt.Sprintf("filter: unknown preset %q", string(p)))
	}
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := fn(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
		pix[i] = toByte(r)
		pix[i+1] = toByte(g)
		pix[i+2] = toByte(b)
	}
}

// Buffer returns a filtered copy of b.
func Buffer(b raster.Buffer, p Preset) raster.Buffer {
	out := b.Clone()
	Apply(out.Pix, p)
	return out
}

func clamp(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 255:
		return 255
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.RoundToEven(clamp(v)))
}
