// Package stroke turns pointer samples into smoothed freehand brush strokes.
package stroke

import (
	"github.com/example/photoedit/internal/surface"
)

// MinStep is the distance a sample must move from the last recorded point
// before it is drawn.
const MinStep = 2.0

// Painter is the surface primitive strokes are drawn with.
type Painter interface {
	Bound() bool
	StrokeQuad(from, ctrl, to surface.Point, st surface.Style) error
}

// Capturer records the pre-stroke state for undo.
type Capturer interface {
	CaptureUndo()
}

// CapturerFunc adapts a function to Capturer.
type CapturerFunc func()

// CaptureUndo calls f.
func (f CapturerFunc) CaptureUndo() { f() }

// State of the engine.
type State int

const (
	Idle State = iota
	Stroking
)

func (s State) String() string {
	if s == Stroking {
		return "stroking"
	}
	return "idle"
}

// Engine is the idle/stroking state machine. It is not safe for concurrent
// use.
type Engine struct {
	painter  Painter
	capturer Capturer

	state State
	style surface.Style
	start surface.Point // start of the current sub-path
	last  surface.Point
}

// New returns an idle engine drawing onto p and capturing history with c.
func New(p Painter, c Capturer) *Engine {
	return &Engine{painter: p, capturer: c}
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Last returns the last recorded point.
func (e *Engine) Last() surface.Point { return e.last }

// Begin starts a stroke at p with the given brush. It returns false and
// stays idle when drawing is disabled or no surface is bound. History is
// captured before any pixel is touched.
func (e *Engine) Begin(p surface.Point, style surface.Style, enabled bool) bool {
	if !enabled || e.painter == nil || !e.painter.Bound() {
		return false
	}
	if e.capturer != nil {
		e.capturer.CaptureUndo()
	}
	e.state = Stroking
	e.style = style
	e.start = p
	e.last = p
	return true
}

// Move extends the stroke towards p. Samples closer than MinStep to the last
// recorded point are dropped. It reports whether a segment was drawn.
func (e *Engine) Move(p surface.Point) (bool, error) {
	if e.state != Stroking {
		return false, nil
	}
	if e.last.Dist(p) < MinStep {
		return false, nil
	}
	mid := e.last.Mid(p)
	err := e.painter.StrokeQuad(e.start, e.last, mid, e.style)
	e.last = mid
	e.start = mid
	return true, err
}

// End finishes the stroke.
func (e *Engine) End() {
	e.state = Idle
}
