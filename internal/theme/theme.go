// Package theme holds the colours of the editor window.
package theme

import (
	"image/color"
	"sort"
)

// Theme is the editor window palette.
type Theme struct {
	Name string

	Background color.RGBA // behind the canvas
	Foreground color.RGBA // status text

	PanelBackground color.RGBA
	PanelText       color.RGBA
	PanelSelected   color.RGBA

	SliderTrack  color.RGBA
	SliderFill   color.RGBA
	SliderCenter color.RGBA

	// Shown through transparent canvas pixels.
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:            "light",
		Background:      color.RGBA{220, 220, 220, 255},
		Foreground:      color.RGBA{0, 0, 0, 255},
		PanelBackground: color.RGBA{236, 236, 236, 255},
		PanelText:       color.RGBA{20, 20, 20, 255},
		PanelSelected:   color.RGBA{190, 210, 240, 255},
		SliderTrack:     color.RGBA{200, 200, 200, 255},
		SliderFill:      color.RGBA{70, 120, 200, 255},
		SliderCenter:    color.RGBA{90, 90, 90, 255},
		CheckerLight:    color.RGBA{220, 220, 220, 255},
		CheckerDark:     color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name:            "dark",
		Background:      color.RGBA{30, 30, 32, 255},
		Foreground:      color.RGBA{230, 230, 230, 255},
		PanelBackground: color.RGBA{44, 44, 48, 255},
		PanelText:       color.RGBA{220, 220, 220, 255},
		PanelSelected:   color.RGBA{60, 80, 120, 255},
		SliderTrack:     color.RGBA{70, 70, 76, 255},
		SliderFill:      color.RGBA{110, 160, 240, 255},
		SliderCenter:    color.RGBA{160, 160, 160, 255},
		CheckerLight:    color.RGBA{80, 80, 80, 255},
		CheckerDark:     color.RGBA{60, 60, 60, 255},
	}
}

var builtin = map[string]func() *Theme{
	"light":   Default,
	"default": Default,
	"dark":    Dark,
}

// Builtin returns a copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtin[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
