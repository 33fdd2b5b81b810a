package stroke

import (
	"testing"

	"github.com/example/photoedit/internal/surface"
)

type segment struct {
	from, ctrl, to surface.Point
}

type recorder struct {
	bound    bool
	segments []segment
	styles   []surface.Style
	captures int
	log      []string
}

func (r *recorder) Bound() bool { return r.bound }

func (r *recorder) StrokeQuad(from, ctrl, to surface.Point, st surface.Style) error {
	r.segments = append(r.segments, segment{from, ctrl, to})
	r.styles = append(r.styles, st)
	r.log = append(r.log, "draw")
	return nil
}

func (r *recorder) CaptureUndo() {
	r.captures++
	r.log = append(r.log, "capture")
}

func TestBeginRequiresModeAndSurface(t *testing.T) {
	r := &recorder{}
	e := New(r, r)
	if e.Begin(surface.Pt(1, 1), surface.Style{Width: 5}, true) {
		t.Fatal("Begin succeeded without a surface")
	}
	r.bound = true
	if e.Begin(surface.Pt(1, 1), surface.Style{Width: 5}, false) {
		t.Fatal("Begin succeeded with drawing disabled")
	}
	if r.captures != 0 || e.State() != Idle {
		t.Fatalf("captures=%d state=%v", r.captures, e.State())
	}
}

func TestCaptureHappensOnceBeforeDrawing(t *testing.T) {
	r := &recorder{bound: true}
	e := New(r, r)
	e.Begin(surface.Pt(0, 0), surface.Style{Width: 5}, true)
	e.Move(surface.Pt(10, 0))
	e.Move(surface.Pt(20, 0))
	e.End()
	if r.captures != 1 {
		t.Fatalf("captures = %d, want 1", r.captures)
	}
	if r.log[0] != "capture" {
		t.Fatalf("first event %q, want capture", r.log[0])
	}
	if e.State() != Idle {
		t.Fatalf("state after End = %v", e.State())
	}
}

func TestJitterIsDropped(t *testing.T) {
	r := &recorder{bound: true}
	e := New(r, r)
	e.Begin(surface.Pt(5, 5), surface.Style{Width: 5}, true)
	drew, _ := e.Move(surface.Pt(6, 6))
	if drew || len(r.segments) != 0 {
		t.Fatal("jitter sample was drawn")
	}
	if e.Last() != surface.Pt(5, 5) {
		t.Fatalf("last moved to %v", e.Last())
	}
	drew, _ = e.Move(surface.Pt(5, 6.9))
	if drew || e.Last() != surface.Pt(5, 5) {
		t.Fatal("second jitter sample changed state")
	}
}

func TestSegmentsChainThroughMidpoints(t *testing.T) {
	r := &recorder{bound: true}
	e := New(r, r)
	style := surface.Style{Width: 7}
	e.Begin(surface.Pt(0, 0), style, true)
	e.Move(surface.Pt(10, 0))
	e.Move(surface.Pt(10, 10))

	want := []segment{
		{surface.Pt(0, 0), surface.Pt(0, 0), surface.Pt(5, 0)},
		{surface.Pt(5, 0), surface.Pt(5, 0), surface.Pt(7.5, 5)},
	}
	if len(r.segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(r.segments), len(want))
	}
	for i := range want {
		if r.segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, r.segments[i], want[i])
		}
		if r.styles[i].Width != 7 {
			t.Errorf("segment %d width %v", i, r.styles[i].Width)
		}
	}
	if e.Last() != surface.Pt(7.5, 5) {
		t.Fatalf("last = %v, want midpoint", e.Last())
	}
}

func TestMoveWhileIdleIgnored(t *testing.T) {
	r := &recorder{bound: true}
	e := New(r, r)
	if drew, _ := e.Move(surface.Pt(50, 50)); drew {
		t.Fatal("idle engine drew")
	}
}
