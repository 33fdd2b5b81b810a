// Package editor owns the editing session: the source image, the canvas it
// is rendered on, the adjustment state and the undo history.
package editor

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/history"
	"github.com/example/photoedit/internal/imageio"
	"github.com/example/photoedit/internal/render"
	"github.com/example/photoedit/internal/stroke"
	"github.com/example/photoedit/internal/surface"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// State is a snapshot of the session seen by observers.
type State struct {
	Params       adjust.Params
	Filter       filter.Preset
	Brush        Brush
	Rotation     float64
	DrawingMode  bool
	Drawing      bool
	ShowControls bool

	HasImage bool
	Width    int
	Height   int
	Undo     int
}

// Session serializes every read and write of the canvas. Pixel work runs
// synchronously under the session lock; only debounced renders run on a
// timer goroutine, and they take the same lock.
type Session struct {
	mu       sync.Mutex
	state    State
	img      image.Image
	canvas   *surface.Canvas
	pipeline *render.Pipeline
	sched    *render.Scheduler
	hist     *history.Stack
	strokes  *stroke.Engine

	maxW, maxH   int
	delay        time.Duration
	historyLimit int
	onRender     func(render.Frame)
	onError      func(error)

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// Option configures a Session.
type Option func(*Session)

// WithMaxSize sets the viewport the image is fitted into.
func WithMaxSize(w, h int) Option { return func(s *Session) { s.maxW, s.maxH = w, h } }

// WithDebounce sets the render coalescing window.
func WithDebounce(d time.Duration) Option { return func(s *Session) { s.delay = d } }

// WithHistoryLimit sets the number of undo snapshots kept.
func WithHistoryLimit(n int) Option { return func(s *Session) { s.historyLimit = n } }

// WithBrush sets the initial brush.
func WithBrush(b Brush) Option { return func(s *Session) { s.state.Brush = b } }

// WithRenderListener registers a callback run after every render, while
// the session lock is held.
func WithRenderListener(fn func(render.Frame)) Option { return func(s *Session) { s.onRender = fn } }

// WithErrorHandler receives errors from debounced renders.
func WithErrorHandler(fn func(error)) Option { return func(s *Session) { s.onError = fn } }

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		state: State{Filter: filter.None, Brush: DefaultBrush()},
		subs:  map[int]func(State){},
	}
	for _, o := range opts {
		o(s)
	}
	if s.state.Brush.Size <= 0 {
		s.state.Brush.Size = DefaultBrushSize
	}
	s.pipeline = render.NewPipeline(s.maxW, s.maxH)
	s.sched = render.NewScheduler(s.delay)
	s.hist = history.New(s.historyLimit)
	s.canvas = &surface.Canvas{}
	s.strokes = stroke.New(s.canvas, stroke.CapturerFunc(func() { s.hist.Capture(s.canvas) }))
	return s
}

// Subscribe registers fn to receive the state after every change. The
// returned function removes the subscription.
func (s *Session) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Session) publish(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

// snapshotLocked fills in the derived fields. Callers hold s.mu.
func (s *Session) snapshotLocked() State {
	st := s.state
	st.HasImage = s.img != nil
	st.Width, st.Height = s.canvas.Size()
	st.Undo = s.hist.Len()
	return st
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// update applies fn under the lock, publishes the result and optionally
// schedules a render.
func (s *Session) update(fn func(*State) error, rerender bool) error {
	s.mu.Lock()
	if err := fn(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}
	st := s.snapshotLocked()
	s.mu.Unlock()
	if rerender {
		s.ScheduleRender()
	}
	s.publish(st)
	return nil
}

func (s *Session) frameLocked() render.Frame {
	return render.Frame{
		Image:    s.img,
		Params:   s.state.Params,
		Filter:   s.state.Filter,
		Rotation: s.state.Rotation,
	}
}

func (s *Session) renderLocked() error {
	if s.img == nil || !s.canvas.Bound() {
		return nil
	}
	f := s.frameLocked()
	err := s.pipeline.Render(s.canvas, f)
	if s.onRender != nil {
		s.onRender(f)
	}
	return err
}

// ScheduleRender queues a debounced render, replacing any queued one.
func (s *Session) ScheduleRender() {
	s.sched.Schedule(func() {
		s.mu.Lock()
		err := s.renderLocked()
		st := s.snapshotLocked()
		s.mu.Unlock()
		if err != nil && s.onError != nil {
			s.onError(err)
		}
		s.publish(st)
	})
}

// Render drops any queued render and renders now.
func (s *Session) Render() error {
	s.sched.Cancel()
	s.mu.Lock()
	err := s.renderLocked()
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
	return err
}

// Flush runs a queued render immediately. It reports whether one ran.
func (s *Session) Flush() bool { return s.sched.Flush() }

// Load binds img to a fresh canvas, fitted to the viewport, and renders it.
// History from any previous image is discarded.
func (s *Session) Load(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("load: %w", ErrNoImage)
	}
	s.sched.Cancel()
	s.mu.Lock()
	s.hist.Clear()
	s.img = img
	s.state.Drawing = false
	s.strokes.End()
	err := s.pipeline.Setup(s.canvas, s.frameLocked())
	if err == nil && s.onRender != nil {
		s.onRender(s.frameLocked())
	}
	s.state.ShowControls = err == nil
	if err != nil {
		s.img = nil
		s.canvas.Resize(0, 0)
	}
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

// SetParam sets one slider by name.
func (s *Session) SetParam(name string, v float64) error {
	return s.update(func(st *State) error { return st.Params.Set(name, v) }, true)
}

// SetParams replaces every slider.
func (s *Session) SetParams(p adjust.Params) {
	_ = s.update(func(st *State) error { st.Params = p; return nil }, true)
}

// SetFilter selects the preset.
func (s *Session) SetFilter(p filter.Preset) error {
	if p == "" {
		p = filter.None
	}
	if !filter.Known(p) {
		return fmt.Errorf("unknown filter %q", string(p))
	}
	return s.update(func(st *State) error { st.Filter = p; return nil }, true)
}

// SetRotation sets the rotation in degrees clockwise.
func (s *Session) SetRotation(deg float64) {
	_ = s.update(func(st *State) error { st.Rotation = deg; return nil }, true)
}

// Rotate adds delta degrees to the rotation.
func (s *Session) Rotate(delta float64) {
	_ = s.update(func(st *State) error { st.Rotation = render.NormalizeRotation(st.Rotation + delta); return nil }, true)
}

// SetBrush replaces the brush used by the next stroke.
func (s *Session) SetBrush(b Brush) error {
	if b.Size <= 0 {
		return fmt.Errorf("brush size %v must be positive", b.Size)
	}
	return s.update(func(st *State) error { st.Brush = b; return nil }, false)
}

// SetDrawingMode toggles freehand drawing.
func (s *Session) SetDrawingMode(on bool) {
	_ = s.update(func(st *State) error { st.DrawingMode = on; return nil }, false)
}

// SetShowControls toggles the adjustment panel.
func (s *Session) SetShowControls(on bool) {
	_ = s.update(func(st *State) error { st.ShowControls = on; return nil }, false)
}

// Reset restores the sliders, preset, rotation and drawing mode defaults.
func (s *Session) Reset() {
	_ = s.update(func(st *State) error {
		st.Params = adjust.Params{}
		st.Filter = filter.None
		st.Rotation = 0
		st.DrawingMode = false
		return nil
	}, true)
}

// NewImage returns the session to its empty state, dropping the image, the
// canvas and the history.
func (s *Session) NewImage() {
	s.sched.Cancel()
	s.mu.Lock()
	s.strokes.End()
	s.hist.Clear()
	s.img = nil
	s.canvas.Resize(0, 0)
	brush := s.state.Brush
	s.state = State{Filter: filter.None, Brush: brush}
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.publish(st)
}

// BeginStroke starts drawing at p. It reports false when drawing mode is off
// or no image is loaded.
func (s *Session) BeginStroke(p surface.Point) bool {
	s.mu.Lock()
	b := s.state.Brush
	ok := s.strokes.Begin(p, surface.Style{Width: b.Size, Color: b.Color}, s.state.DrawingMode)
	if ok {
		s.state.Drawing = true
	}
	st := s.snapshotLocked()
	s.mu.Unlock()
	if ok {
		s.publish(st)
	}
	return ok
}

// MoveStroke extends the active stroke. It reports whether anything was
// drawn.
func (s *Session) MoveStroke(p surface.Point) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strokes.Move(p)
}

// EndStroke finishes the active stroke.
func (s *Session) EndStroke() {
	s.mu.Lock()
	was := s.state.Drawing
	s.strokes.End()
	s.state.Drawing = false
	st := s.snapshotLocked()
	s.mu.Unlock()
	if was {
		s.publish(st)
	}
}

// Undo restores the canvas to the newest snapshot.
func (s *Session) Undo() bool {
	s.mu.Lock()
	if !s.canvas.Bound() {
		s.mu.Unlock()
		return false
	}
	ok := s.hist.Undo(s.canvas)
	st := s.snapshotLocked()
	s.mu.Unlock()
	if ok {
		s.publish(st)
	}
	return ok
}

// Snapshot returns a copy of the canvas, or nil when nothing is loaded.
func (s *Session) Snapshot() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Snapshot()
}

// View calls fn with the live canvas under the session lock.
func (s *Session) View(fn func(*image.NRGBA)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.canvas.Image())
}

// Export saves the canvas as PNG into dir and returns the path.
func (s *Session) Export(dir, name string) (string, error) {
	img := s.Snapshot()
	if img == nil {
		return "", fmt.Errorf("export: %w", ErrNoImage)
	}
	return imageio.Save(img, dir, name)
}

// DataURI returns the canvas as a PNG data URI.
func (s *Session) DataURI() (string, error) {
	img := s.Snapshot()
	if img == nil {
		return "", fmt.Errorf("export: %w", ErrNoImage)
	}
	return imageio.DataURI(img)
}

// Close drops any queued render.
func (s *Session) Close() { s.sched.Cancel() }
