// Package adjust implements the ordered tonal adjustment pipeline applied to
// every pixel of a raster buffer.
package adjust

import (
	"fmt"
	"math"
	"strings"

	"github.com/example/photoedit/internal/raster"
)

// Params holds the eleven slider values. Each slider is nominally within
// [-100, 100] with 0 meaning "leave untouched". Values are not clamped.
type Params struct {
	Exposure   float64
	Brightness float64
	Contrast   float64
	Highlights float64
	Shadows    float64
	Whites     float64
	Blacks     float64
	Saturation float64
	Vibrance   float64
	Clarity    float64
	Dehaze     float64
}

// Slider range.
const (
	Min = -100
	Max = 100
)

var names = []string{
	"exposure",
	"brightness",
	"contrast",
	"highlights",
	"shadows",
	"whites",
	"blacks",
	"saturation",
	"vibrance",
	"clarity",
	"dehaze",
}

// Names returns the slider names in pipeline order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

func (p *Params) field(name string) (*float64, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "exposure":
		return &p.Exposure, nil
	case "brightness":
		return &p.Brightness, nil
	case "contrast":
		return &p.Contrast, nil
	case "highlights":
		return &p.Highlights, nil
	case "shadows":
		return &p.Shadows, nil
	case "whites":
		return &p.Whites, nil
	case "blacks":
		return &p.Blacks, nil
	case "saturation":
		return &p.Saturation, nil
	case "vibrance":
		return &p.Vibrance, nil
	case "clarity":
		return &p.Clarity, nil
	case "dehaze":
		return &p.Dehaze, nil
	}
	return nil, fmt.Errorf("unknown adjustment %q", name)
}

// Set assigns the slider called name.
func (p *Params) Set(name string, v float64) error {
	f, err := p.field(name)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Get returns the value of the slider called name.
func (p Params) Get(name string) (float64, error) {
	f, err := p.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// IsZero reports whether every slider is at its default.
func (p Params) IsZero() bool { return p == Params{} }

// Buffer returns a processed copy of b.
func Buffer(b raster.Buffer, p Params) raster.Buffer {
	out := b.Clone()
	Apply(out.Pix, p)
	return out
}

func luma(r, g, b float64) float64 { return raster.Luminance(r, g, b) }

// Apply runs the pipeline over pix in place. Alpha samples are never
// touched. Each step is skipped when its slider is exactly zero.
func Apply(pix []uint8, p Params) {
	if p.IsZero() {
		return
	}
	var exposure float64
	if p.Exposure != 0 {
		exposure = math.Pow(2, p.Exposure/100)
	}
	for i := 0; i+3 < len(pix); i += 4 {
		r := float64(pix[i]) / 255
		g := float64(pix[i+1]) / 255
		b := float64(pix[i+2]) / 255

		if p.Exposure != 0 {
			r *= exposure
			g *= exposure
			b *= exposure
		}

		if p.Highlights != 0 {
			if l := luma(r, g, b); l > 0.5 {
				f := 1 + (p.Highlights/100)*(l-0.5)*2
				r, g, b = r*f, g*f, b*f
			}
		}

		if p.Shadows != 0 {
			if l := luma(r, g, b); l < 0.5 {
				f := 1 + (p.Shadows/100)*(0.5-l)*2
				r, g, b = r*f, g*f, b*f
			}
		}

		if p.Whites != 0 {
			if l := luma(r, g, b); l > 0.8 {
				f := 1 + (p.Whites/100)*(l-0.8)*5
				r, g, b = r*f, g*f, b*f
			}
		}

		if p.Blacks != 0 {
			if l := luma(r, g, b); l < 0.2 {
				f := 1 + (p.Blacks/100)*(0.2-l)*5
				r, g, b = r*f, g*f, b*f
			}
		}

		if p.Brightness != 0 {
			off := p.Brightness / 100
			r, g, b = r+off, g+off, b+off
		}

		if p.Contrast != 0 {
			f := 1 + p.Contrast/100
			r = (r-0.5)*f + 0.5
			g = (g-0.5)*f + 0.5
			b = (b-0.5)*f + 0.5
		}

		if p.Saturation != 0 {
			l := luma(r, g, b)
			r, g, b = stretch(r, g, b, l, 1+p.Saturation/100)
		}

		if p.Vibrance != 0 {
			avg := (r + g + b) / 3
			level := math.Max(r, math.Max(g, b)) - avg
			r, g, b = stretch(r, g, b, avg, 1+(p.Vibrance/100)*(1-level))
		}

		if p.Clarity != 0 {
			if l := luma(r, g, b); l > 0.2 && l < 0.8 {
				r, g, b = stretch(r, g, b, l, 1+(p.Clarity/100)*0.3)
			}
		}

		if p.Dehaze != 0 {
			l := luma(r, g, b)
			r, g, b = stretch(r, g, b, l, 1+p.Dehaze/100)
		}

		pix[i] = toByte(r)
		pix[i+1] = toByte(g)
		pix[i+2] = toByte(b)
	}
}

// stretch scales each channel's distance from anchor by f.
func stretch(r, g, b, anchor, f float64) (float64, float64, float64) {
	return anchor + (r-anchor)*f, anchor + (g-anchor)*f, anchor + (b-anchor)*f
}

// toByte clamps a normalized sample to [0,1] and rounds half to even on the
// 0-255 scale.
func toByte(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.RoundToEven(v * 255))
}
