// Package window is the desktop editor: a shiny window showing the canvas of
// an editor.Session with a panel of adjustment sliders.
package window

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/capture"
	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/imageio"
	"github.com/example/photoedit/internal/notify"
	"github.com/example/photoedit/internal/theme"
)

const statusDuration = 2 * time.Second

// Window drives an editor.Session from keyboard and mouse events.
type Window struct {
	session    *editor.Session
	theme      *theme.Theme
	title      string
	exportDir  string
	exportName string
	notifier   *notify.Notifier

	// Replaceable for tests.
	readClipboard  func() (image.Image, error)
	writeClipboard func(image.Image) error
	grabScreen     func(context.Context) (image.Image, error)

	mu          sync.Mutex
	selected    int
	status      string
	statusUntil time.Time
}

// Option configures a Window.
type Option func(*Window)

// WithTheme sets the palette.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(w *Window) { w.title = title } }

// WithExport sets where Ctrl+S writes.
func WithExport(dir, name string) Option {
	return func(w *Window) { w.exportDir, w.exportName = dir, name }
}

// WithNotifier reports exports and copies through n.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.notifier = n } }

// New creates a Window for s.
func New(s *editor.Session, opts ...Option) *Window {
	w := &Window{
		session:        s,
		theme:          theme.Default(),
		title:          "photoedit",
		exportName:     imageio.DefaultName,
		readClipboard:  clipboard.ReadImage,
		writeClipboard: clipboard.WriteImage,
		grabScreen: func(ctx context.Context) (image.Image, error) {
			return capture.Screen(ctx, capture.Options{})
		},
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s until the window closes.
func (w *Window) Main(s screen.Screen) {
	st := w.session.State()
	width, height := windowSize(st.Width, st.Height)
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: w.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()
	defer w.session.Close()

	// Session changes arrive from the render timer; coalesce them into
	// at most one pending repaint.
	updateCh := make(chan struct{}, 1)
	unsubscribe := w.session.Subscribe(func(editor.State) {
		select {
		case updateCh <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-updateCh:
				win.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var stroking bool
	sliderDrag := -1
	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			win.Send(paint.Event{})
		case paint.Event:
			w.paint(s, win, width, height)
		case key.Event:
			act, arg := keyAction(e)
			if act == actNone {
				continue
			}
			if w.perform(act, arg) {
				return
			}
			win.Send(paint.Event{})
		case mouse.Event:
			st := w.session.State()
			p := image.Pt(int(e.X), int(e.Y))
			switch {
			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if st.ShowControls && p.X < panelWidth {
					if i := sliderAt(p); i >= 0 {
						sliderDrag = i
						w.dragSlider(i, p.X)
						win.Send(paint.Event{})
					}
					continue
				}
				r, scale := canvasRect(width, height, st.Width, st.Height, st.ShowControls)
				if pt, ok := toCanvas(e.X, e.Y, r, scale); ok {
					stroking = w.session.BeginStroke(pt)
				}
			case e.Direction == mouse.DirRelease:
				if stroking {
					w.session.EndStroke()
					stroking = false
				}
				sliderDrag = -1
				win.Send(paint.Event{})
			case e.Direction == mouse.DirNone && sliderDrag >= 0:
				w.dragSlider(sliderDrag, p.X)
				win.Send(paint.Event{})
			case e.Direction == mouse.DirNone && stroking:
				r, scale := canvasRect(width, height, st.Width, st.Height, st.ShowControls)
				pt, ok := toCanvas(e.X, e.Y, r, scale)
				if !ok {
					continue
				}
				drew, err := w.session.MoveStroke(pt)
				if err != nil {
					log.Printf("stroke: %v", err)
					continue
				}
				if drew {
					win.Send(paint.Event{})
				}
			}
		}
	}
}

func (w *Window) paint(s screen.Screen, win screen.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	ps := w.paintState(width, height)
	w.session.View(func(canvas *image.NRGBA) {
		paintFrame(b.RGBA(), w.theme, ps, canvas)
	})
	win.Upload(image.Point{}, b, b.Bounds())
	win.Publish()
}

func (w *Window) paintState(width, height int) paintState {
	w.mu.Lock()
	defer w.mu.Unlock()
	status := w.status
	if time.Now().After(w.statusUntil) {
		status = ""
	}
	return paintState{
		width:    width,
		height:   height,
		state:    w.session.State(),
		selected: w.selected,
		status:   status,
	}
}

func (w *Window) setStatus(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	w.mu.Lock()
	w.status = msg
	w.statusUntil = time.Now().Add(statusDuration)
	w.mu.Unlock()
}

func (w *Window) selectedName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return adjust.Names()[w.selected]
}

func (w *Window) dragSlider(i, x int) {
	w.mu.Lock()
	w.selected = i
	w.mu.Unlock()
	v := trackValue(x, trackRect(sliderRow(i)))
	if err := w.session.SetParam(adjust.Names()[i], v); err != nil {
		log.Printf("slider: %v", err)
	}
}

func (w *Window) nudge(delta float64) {
	name := w.selectedName()
	cur, err := w.session.State().Params.Get(name)
	if err != nil {
		log.Printf("slider: %v", err)
		return
	}
	if err := w.session.SetParam(name, clampSlider(cur+delta)); err != nil {
		log.Printf("slider: %v", err)
	}
}

// perform runs act. It reports true when the window should close.
func (w *Window) perform(act action, arg int) bool {
	n := len(adjust.Names())
	switch act {
	case actSelect:
		if arg >= 0 && arg < n {
			w.mu.Lock()
			w.selected = arg
			w.mu.Unlock()
		}
	case actNextSlider, actPrevSlider:
		dir := 1
		if act == actPrevSlider {
			dir = -1
		}
		w.mu.Lock()
		w.selected = wrapIndex(w.selected, dir, n)
		w.mu.Unlock()
	case actIncrease:
		w.nudge(float64(arg))
	case actDecrease:
		w.nudge(-float64(arg))
	case actNextFilter, actPrevFilter:
		dir := 1
		if act == actPrevFilter {
			dir = -1
		}
		next := cycleFilter(w.session.State().Filter, dir)
		if err := w.session.SetFilter(next); err != nil {
			log.Printf("filter: %v", err)
			return false
		}
		w.setStatus("filter %s", next)
	case actRotateCW:
		w.session.Rotate(90)
	case actRotateCCW:
		w.session.Rotate(-90)
	case actToggleDraw:
		on := !w.session.State().DrawingMode
		w.session.SetDrawingMode(on)
		w.setStatus("drawing %s", onOff(on))
	case actToggleControls:
		w.session.SetShowControls(!w.session.State().ShowControls)
	case actUndo:
		if !w.session.Undo() {
			w.setStatus("nothing to undo")
		}
	case actExport:
		path, err := w.session.Export(w.exportDir, w.exportName)
		if err != nil {
			w.setStatus("export failed: %v", err)
			return false
		}
		w.setStatus("saved %s", path)
		w.notifier.Export(path)
	case actCopy:
		img := w.session.Snapshot()
		if img == nil {
			return false
		}
		if err := w.writeClipboard(img); err != nil {
			w.setStatus("copy failed: %v", err)
			return false
		}
		w.setStatus("image copied to clipboard")
		w.notifier.Copy("")
	case actPaste:
		img, err := w.readClipboard()
		if err != nil {
			w.setStatus("paste failed: %v", err)
			return false
		}
		w.load(img, "pasted image")
	case actCapture:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		img, err := w.grabScreen(ctx)
		if err != nil {
			w.setStatus("capture failed: %v", err)
			return false
		}
		w.load(img, "captured screen")
	case actReset:
		w.session.Reset()
		w.setStatus("reset")
	case actNewImage:
		w.session.NewImage()
	case actQuit:
		return true
	}
	return false
}

func (w *Window) load(img image.Image, what string) {
	if err := w.session.Load(img); err != nil {
		w.setStatus("%s: %v", what, err)
		return
	}
	b := img.Bounds()
	w.setStatus("%s %dx%d", what, b.Dx(), b.Dy())
}
