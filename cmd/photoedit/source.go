package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/capture"
	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/imageio"
)

// Replaceable for tests.
var (
	readClipboardFn  = clipboard.ReadImage
	writeClipboardFn = clipboard.WriteImage
	captureScreenFn  = func(ctx context.Context, monitor string) (image.Image, error) {
		return capture.Screen(ctx, capture.Options{Monitor: monitor})
	}
)

// sourceFlags choose where the input image comes from: a file argument, the
// clipboard or a screen capture.
type sourceFlags struct {
	fromClipboard bool
	grab          bool
	monitor       string
	file          string
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&s.grab, "capture", false, "capture the screen as the input image")
	fs.StringVar(&s.monitor, "monitor", "", "with -capture, crop to a monitor (primary, index or name)")
}

// resolve validates the flags against the remaining positional args and
// records the input file.
func (s *sourceFlags) resolve(args []string) error {
	if s.fromClipboard && s.grab {
		return errors.New("-from-clipboard and -capture cannot be combined")
	}
	if s.monitor != "" && !s.grab {
		return errors.New("-monitor requires -capture")
	}
	if s.fromClipboard || s.grab {
		if len(args) > 0 {
			return fmt.Errorf("unexpected input file %q with -from-clipboard or -capture", args[0])
		}
		return nil
	}
	if len(args) != 1 {
		return errors.New("exactly one input file is required")
	}
	s.file = args[0]
	return nil
}

func (s *sourceFlags) load(ctx context.Context) (image.Image, error) {
	switch {
	case s.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return img, nil
	case s.grab:
		img, err := captureScreenFn(ctx, s.monitor)
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, nil
	}
	res := <-imageio.LoadAsync(ctx, imageio.FileOpener(s.file))
	if res.Err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.file, res.Err)
	}
	return res.Image, nil
}

// pipelineFlags carry every slider, the preset, the rotation and the
// viewport limits.
type pipelineFlags struct {
	values    map[string]*float64
	filter    string
	rotate    float64
	maxWidth  int
	maxHeight int
}

func (p *pipelineFlags) register(fs *flag.FlagSet) {
	p.values = map[string]*float64{}
	for _, name := range adjust.Names() {
		p.values[name] = fs.Float64(name, 0, fmt.Sprintf("%s adjustment (%d..%d)", name, adjust.Min, adjust.Max))
	}
	fs.StringVar(&p.filter, "filter", string(filter.None), "preset filter (see 'filters')")
	fs.Float64Var(&p.rotate, "rotate", 0, "rotation in degrees clockwise")
	fs.IntVar(&p.maxWidth, "max-width", 0, "viewport width limit (0 uses the config)")
	fs.IntVar(&p.maxHeight, "max-height", 0, "viewport height limit (0 uses the config)")
}

func (p *pipelineFlags) params() (adjust.Params, error) {
	var out adjust.Params
	for name, v := range p.values {
		if math.IsNaN(*v) || *v < adjust.Min || *v > adjust.Max {
			return adjust.Params{}, fmt.Errorf("-%s must be between %d and %d", name, adjust.Min, adjust.Max)
		}
		if err := out.Set(name, *v); err != nil {
			return adjust.Params{}, err
		}
	}
	return out, nil
}

func (p *pipelineFlags) validate() error {
	if _, err := p.params(); err != nil {
		return err
	}
	if _, err := filter.Parse(p.filter); err != nil {
		return err
	}
	if p.maxWidth < 0 || p.maxHeight < 0 {
		return errors.New("-max-width and -max-height cannot be negative")
	}
	return nil
}

// active reports whether any setting differs from its default.
func (p *pipelineFlags) active() bool {
	params, _ := p.params()
	preset, _ := filter.Parse(p.filter)
	return !params.IsZero() || preset != filter.None || p.rotate != 0
}

// apply pushes the settings into s and renders synchronously.
func (p *pipelineFlags) apply(s *editor.Session) error {
	params, err := p.params()
	if err != nil {
		return err
	}
	preset, err := filter.Parse(p.filter)
	if err != nil {
		return err
	}
	s.SetParams(params)
	if err := s.SetFilter(preset); err != nil {
		return err
	}
	s.SetRotation(p.rotate)
	return s.Render()
}

// loadSession decodes the input and loads it into a fresh session.
func (r *root) loadSession(ctx context.Context, src *sourceFlags, p *pipelineFlags) (*editor.Session, error) {
	img, err := src.load(ctx)
	if err != nil {
		return nil, err
	}
	s, err := r.newSession(p.maxWidth, p.maxHeight)
	if err != nil {
		return nil, err
	}
	if err := s.Load(img); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func describeSource(src *sourceFlags) string {
	switch {
	case src.fromClipboard:
		return "clipboard"
	case src.grab:
		if src.monitor != "" {
			return "screen " + strings.TrimSpace(src.monitor)
		}
		return "screen"
	}
	return src.file
}
