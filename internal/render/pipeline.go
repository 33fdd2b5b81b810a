// Package render draws the source image onto the canvas and runs the
// adjustment and preset passes over it.
package render

import (
	"fmt"
	"image"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/filter"
	"github.com/example/photoedit/internal/raster"
)

// Surface is the canvas the pipeline renders into.
type Surface interface {
	Bound() bool
	Resize(width, height int)
	Size() (int, int)
	Clear()
	DrawImage(img image.Image, deg float64)
	Extract() (raster.Buffer, bool)
	Commit(raster.Buffer) error
}

// Frame is everything a render depends on.
type Frame struct {
	Image    image.Image
	Params   adjust.Params
	Filter   filter.Preset
	Rotation float64
}

// Active reports whether the frame needs a pixel pass.
func (f Frame) Active() bool {
	return !f.Params.IsZero() || (f.Filter != filter.None && f.Filter != "")
}

// Pipeline renders frames into a surface.
type Pipeline struct {
	MaxWidth  int
	MaxHeight int

	renders int
	passes  int
}

// NewPipeline returns a pipeline fitting images into maxW x maxH. Zero
// limits use the defaults.
func NewPipeline(maxW, maxH int) *Pipeline {
	if maxW <= 0 {
		maxW = DefaultMaxWidth
	}
	if maxH <= 0 {
		maxH = DefaultMaxHeight
	}
	return &Pipeline{MaxWidth: maxW, MaxHeight: maxH}
}

// Setup sizes s to fit the frame's image and renders it once.
func (p *Pipeline) Setup(s Surface, f Frame) error {
	if s == nil || f.Image == nil {
		return nil
	}
	b := f.Image.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), p.MaxWidth, p.MaxHeight)
	if w == 0 || h == 0 {
		return fmt.Errorf("render: image has no pixels")
	}
	s.Resize(w, h)
	return p.Render(s, f)
}

// Render redraws the frame. It does nothing when the surface is unbound or
// there is no image. The extract and commit round trip only happens when
// an adjustment or preset is active.
func (p *Pipeline) Render(s Surface, f Frame) error {
	if s == nil || !s.Bound() || f.Image == nil {
		return nil
	}
	p.renders++
	s.Clear()
	s.DrawImage(f.Image, NormalizeRotation(f.Rotation))
	if !f.Active() {
		return nil
	}
	buf, ok := s.Extract()
	if !ok {
		return nil
	}
	p.passes++
	adjust.Apply(buf.Pix, f.Params)
	if f.Filter != "" {
		filter.Apply(buf.Pix, f.Filter)
	}
	if err := s.Commit(buf); err != nil {
		return fmt.Errorf("render: commit: %w", err)
	}
	return nil
}

// Renders returns how many frames have been drawn.
func (p *Pipeline) Renders() int { return p.renders }

// Passes returns how many renders ran the pixel pass.
func (p *Pipeline) Passes() int { return p.passes }
