package window

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/theme"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	s := editor.New(editor.WithDebounce(time.Hour))
	t.Cleanup(s.Close)
	if err := s.Load(solid(100, 50, color.NRGBA{R: 90, G: 120, B: 150, A: 255})); err != nil {
		t.Fatalf("load: %v", err)
	}
	w := New(s, WithExport(t.TempDir(), ""), WithTheme(theme.Dark()))
	w.readClipboard = func() (image.Image, error) { return nil, errors.New("empty clipboard") }
	w.writeClipboard = func(image.Image) error { return nil }
	w.grabScreen = func(context.Context) (image.Image, error) { return nil, errors.New("no display") }
	return w
}

func TestPerformSliders(t *testing.T) {
	w := newTestWindow(t)

	w.perform(actSelect, 2)
	w.perform(actIncrease, largeStep)
	w.perform(actIncrease, smallStep)
	if got := w.session.State().Params.Contrast; got != 11 {
		t.Fatalf("contrast = %v, want 11", got)
	}

	w.perform(actPrevSlider, 0)
	for i := 0; i < 15; i++ {
		w.perform(actDecrease, largeStep)
	}
	if got := w.session.State().Params.Brightness; got != -100 {
		t.Fatalf("brightness = %v, want clamped -100", got)
	}

	w.perform(actReset, 0)
	if !w.session.State().Params.IsZero() {
		t.Fatalf("params not reset: %+v", w.session.State().Params)
	}
}

func TestPerformToggles(t *testing.T) {
	w := newTestWindow(t)

	w.perform(actNextFilter, 0)
	if got := w.session.State().Filter; got != filter.Grayscale {
		t.Fatalf("filter = %s", got)
	}
	w.perform(actRotateCW, 0)
	w.perform(actRotateCW, 0)
	w.perform(actRotateCCW, 0)
	if got := w.session.State().Rotation; got != 90 {
		t.Fatalf("rotation = %v", got)
	}
	w.perform(actToggleDraw, 0)
	if !w.session.State().DrawingMode {
		t.Fatalf("drawing mode not enabled")
	}
	shown := w.session.State().ShowControls
	w.perform(actToggleControls, 0)
	if w.session.State().ShowControls == shown {
		t.Fatalf("controls not toggled")
	}
	if !w.perform(actQuit, 0) {
		t.Fatalf("quit did not close")
	}
}

func TestPerformExport(t *testing.T) {
	w := newTestWindow(t)
	w.perform(actExport, 0)
	if _, err := os.Stat(filepath.Join(w.exportDir, "edited-image.png")); err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if !strings.HasPrefix(w.status, "saved ") {
		t.Fatalf("status = %q", w.status)
	}
}

func TestPerformClipboard(t *testing.T) {
	w := newTestWindow(t)
	var copied image.Image
	w.writeClipboard = func(img image.Image) error { copied = img; return nil }
	w.perform(actCopy, 0)
	if copied == nil || copied.Bounds().Dx() != 100 {
		t.Fatalf("copied = %v", copied)
	}

	w.readClipboard = func() (image.Image, error) { return solid(30, 20, color.NRGBA{A: 255}), nil }
	w.perform(actPaste, 0)
	if st := w.session.State(); st.Width != 30 || st.Height != 20 {
		t.Fatalf("pasted size = %dx%d", st.Width, st.Height)
	}
}

func TestPerformCaptureFailure(t *testing.T) {
	w := newTestWindow(t)
	w.perform(actCapture, 0)
	if !strings.Contains(w.status, "capture failed") {
		t.Fatalf("status = %q", w.status)
	}
	if st := w.session.State(); st.Width != 100 {
		t.Fatalf("failed capture replaced the image")
	}
}

func TestPerformUndoEmpty(t *testing.T) {
	w := newTestWindow(t)
	w.perform(actUndo, 0)
	if w.status != "nothing to undo" {
		t.Fatalf("status = %q", w.status)
	}
}

func TestPaintFrame(t *testing.T) {
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, 640, 480))
	st := paintState{width: 640, height: 480, selected: 1}
	st.state.ShowControls = true
	st.state.Brush = editor.DefaultBrush()
	st.state.Filter = filter.None

	canvas := solid(100, 50, color.NRGBA{R: 255, A: 255})
	paintFrame(dst, th, st, canvas)

	r, _ := canvasRect(640, 480, 100, 50, true)
	mid := r.Min.Add(image.Pt(r.Dx()/2, r.Dy()/2))
	if got := dst.RGBAAt(mid.X, mid.Y); got.R != 255 || got.G != 0 {
		t.Fatalf("canvas pixel = %+v", got)
	}
	if got := dst.RGBAAt(panelWidth-2, sliderRow(0).Min.Y+2); got == th.Background {
		t.Fatalf("panel not painted")
	}

	paintFrame(dst, th, paintState{width: 640, height: 480}, nil)
	if got := dst.RGBAAt(320, 10); got != th.Background {
		t.Fatalf("background = %+v", got)
	}
}
