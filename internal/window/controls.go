package window

import (
	"math"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/filter"
)

type action int

const (
	actNone action = iota
	actSelect
	actNextSlider
	actPrevSlider
	actIncrease
	actDecrease
	actNextFilter
	actPrevFilter
	actRotateCW
	actRotateCCW
	actToggleDraw
	actToggleControls
	actUndo
	actExport
	actCopy
	actPaste
	actCapture
	actReset
	actNewImage
	actQuit
)

// Slider steps for the arrow keys; shift uses the large step.
const (
	smallStep = 1
	largeStep = 10
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

type binding struct {
	KeyShortcut
	act  action
	help string
}

var bindings = []binding{
	{KeyShortcut{Code: key.CodeUpArrow}, actPrevSlider, "Up/Down: pick slider"},
	{KeyShortcut{Code: key.CodeDownArrow}, actNextSlider, ""},
	{KeyShortcut{Code: key.CodeLeftArrow}, actDecrease, "Left/Right: adjust (shift x10)"},
	{KeyShortcut{Code: key.CodeRightArrow}, actIncrease, ""},
	{KeyShortcut{Rune: 'f'}, actNextFilter, "F: next filter"},
	{KeyShortcut{Rune: 'F'}, actPrevFilter, ""},
	{KeyShortcut{Rune: 'r'}, actRotateCW, "R: rotate 90"},
	{KeyShortcut{Rune: 'R'}, actRotateCCW, ""},
	{KeyShortcut{Rune: 'd'}, actToggleDraw, "D: drawing mode"},
	{KeyShortcut{Rune: 'h'}, actToggleControls, "H: hide panel"},
	{KeyShortcut{Rune: 'z', Modifiers: key.ModControl}, actUndo, "Ctrl+Z: undo"},
	{KeyShortcut{Rune: 's', Modifiers: key.ModControl}, actExport, "Ctrl+S: export"},
	{KeyShortcut{Rune: 'c', Modifiers: key.ModControl}, actCopy, "Ctrl+C: copy"},
	{KeyShortcut{Rune: 'v', Modifiers: key.ModControl}, actPaste, "Ctrl+V: paste"},
	{KeyShortcut{Rune: 'p', Modifiers: key.ModControl}, actCapture, "Ctrl+P: grab screen"},
	{KeyShortcut{Rune: 'n', Modifiers: key.ModControl}, actNewImage, "Ctrl+N: new"},
	{KeyShortcut{Code: key.CodeDeleteBackspace}, actReset, "Backspace: reset"},
	{KeyShortcut{Code: key.CodeEscape}, actQuit, "Esc: quit"},
}

// keyAction maps a key press to an action and its argument: the slider index
// for actSelect, the step for actIncrease and actDecrease.
func keyAction(e key.Event) (action, int) {
	if e.Direction == key.DirRelease {
		return actNone, 0
	}
	shift := e.Modifiers&key.ModShift != 0
	mods := e.Modifiers &^ key.ModShift
	if mods == 0 && e.Rune >= '0' && e.Rune <= '9' {
		idx := int(e.Rune - '1')
		if e.Rune == '0' {
			idx = 9
		}
		if idx < len(adjust.Names()) {
			return actSelect, idx
		}
		return actNone, 0
	}
	r := e.Rune
	if mods&key.ModControl != 0 {
		r = unicode.ToLower(r)
	}
	for _, b := range bindings {
		if b.Modifiers != mods {
			continue
		}
		if b.Code != 0 && b.Code != e.Code {
			continue
		}
		if b.Rune != 0 && b.Rune != r {
			continue
		}
		switch b.act {
		case actIncrease, actDecrease:
			if shift {
				return b.act, largeStep
			}
			return b.act, smallStep
		}
		return b.act, 0
	}
	return actNone, 0
}

// helpLines returns the shortcut hints shown in the panel.
func helpLines() []string {
	var out []string
	for _, b := range bindings {
		if b.help != "" {
			out = append(out, b.help)
		}
	}
	return out
}

// clampSlider limits v to the slider range.
func clampSlider(v float64) float64 {
	return math.Max(adjust.Min, math.Min(adjust.Max, v))
}

// cycleFilter returns the preset dir steps away from cur, wrapping around.
func cycleFilter(cur filter.Preset, dir int) filter.Preset {
	all := filter.All()
	idx := 0
	for i, p := range all {
		if p == cur {
			idx = i
			break
		}
	}
	n := len(all)
	return all[((idx+dir)%n+n)%n]
}

// wrapIndex steps i by dir within [0, n).
func wrapIndex(i, dir, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+dir)%n + n) % n
}
