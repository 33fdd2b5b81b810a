// Package capture grabs the desktop so it can be opened as a source photo.
//
// On Linux and the BSDs the xdg-desktop-portal Screenshot interface is tried
// first and the X11 root window is read directly when no portal answers.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// ErrUnsupported is returned on platforms without a capture backend.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

var errNoMonitors = errors.New("no monitors found")

// Options tune a screen capture.
type Options struct {
	// Interactive lets the portal show its own picker.
	Interactive bool
	// IncludeCursor asks the portal to embed the pointer.
	IncludeCursor bool
	// Monitor crops the result to one output. Accepts "primary", an index
	// (optionally prefixed by '#') or a fragment of the output name.
	Monitor string
}

// Monitor describes one connected output in root window coordinates.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

type backend interface {
	portal(ctx context.Context, opts Options) (image.Image, error)
	root(ctx context.Context) (image.Image, error)
	monitors() ([]Monitor, error)
}

// Screen captures the desktop and returns it as straight-alpha pixels.
func Screen(ctx context.Context, opts Options) (*image.NRGBA, error) {
	img, err := active.portal(ctx, opts)
	if err != nil {
		if errors.Is(err, ErrUnsupported) || ctx.Err() != nil {
			return nil, fmt.Errorf("capture screen: %w", err)
		}
		log.Printf("capture: portal failed, reading root window: %v", err)
		img, err = active.root(ctx)
		if err != nil {
			return nil, fmt.Errorf("capture screen: %w", err)
		}
	}
	if opts.Monitor == "" || opts.Interactive {
		return Crop(img, img.Bounds()), nil
	}
	mons, err := active.monitors()
	if err != nil {
		return nil, fmt.Errorf("capture monitor %q: %w", opts.Monitor, err)
	}
	mon, err := FindMonitor(mons, opts.Monitor)
	if err != nil {
		return nil, fmt.Errorf("capture monitor %q: %w", opts.Monitor, err)
	}
	return Crop(img, mon.Rect), nil
}

// Monitors lists the connected outputs.
func Monitors() ([]Monitor, error) {
	return active.monitors()
}

// Crop copies the part of img inside r into a new image anchored at 0,0.
// An r that misses img entirely yields an empty image.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	r = r.Intersect(img.Bounds())
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	if r.Empty() {
		return out
	}
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// FindMonitor resolves a monitor selector against the provided list.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	sel := strings.ToLower(strings.TrimSpace(selector))
	switch sel {
	case "":
		return monitors[0], nil
	case "primary":
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(sel, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), sel) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}
