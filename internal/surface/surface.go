// Package surface provides the in-memory canvas the editor renders into.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/photoedit/internal/raster"
)

// ErrSizeMismatch is returned by Commit when the buffer does not match the
// canvas dimensions.
var ErrSizeMismatch = errors.New("surface: buffer size mismatch")

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Mid returns the point halfway between p and q.
func (p Point) Mid(q Point) Point { return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2} }

// Style describes a brush stroke. Caps and joins are always round and the
// stroke composites source-over.
type Style struct {
	Width float64
	Color color.Color
}

// Canvas is a straight-alpha RGBA pixel surface. The zero value is an unbound
// canvas; every drawing call on it is ignored. Canvas is not safe for
// concurrent use.
type Canvas struct {
	img *image.NRGBA
}

// New returns a canvas of the given size. Non-positive sizes yield an
// unbound canvas.
func New(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the canvas, discarding its contents.
func (c *Canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		c.img = nil
		return
	}
	c.img = image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Bound reports whether the canvas has pixels to draw on.
func (c *Canvas) Bound() bool { return c != nil && c.img != nil }

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	if !c.Bound() {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear makes every pixel transparent black.
func (c *Canvas) Clear() {
	if !c.Bound() {
		return
	}
	clear(c.img.Pix)
}

// DrawImage paints src scaled to fill the canvas and rotated by deg degrees
// clockwise about the canvas centre. Regions of the rotated image that fall
// outside the canvas are clipped.
func (c *Canvas) DrawImage(src image.Image, deg float64) {
	if !c.Bound() || src == nil {
		return
	}
	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	w, h := c.Size()
	sx := float64(w) / float64(sb.Dx())
	sy := float64(h) / float64(sb.Dy())
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)

	a, b := cos*sx, -sin*sy
	d, e := sin*sx, cos*sy
	cx := float64(sb.Min.X) + float64(sb.Dx())/2
	cy := float64(sb.Min.Y) + float64(sb.Dy())/2
	m := f64.Aff3{
		a, b, float64(w)/2 - (a*cx + b*cy),
		d, e, float64(h)/2 - (d*cx + e*cy),
	}
	draw.BiLinear.Transform(c.img, m, src, sb, draw.Over, nil)
}

// Extract returns an owned copy of the canvas pixels. ok is false when the
// canvas is unbound.
func (c *Canvas) Extract() (raster.Buffer, bool) {
	if !c.Bound() {
		return raster.Buffer{}, false
	}
	w, h := c.Size()
	b := raster.New(w, h)
	for y := 0; y < h; y++ {
		copy(b.Pix[y*w*4:(y+1)*w*4], c.img.Pix[y*c.img.Stride:y*c.img.Stride+w*4])
	}
	return b, true
}

// Commit replaces the canvas pixels with b. A buffer whose size differs from
// the canvas is rejected and nothing is written.
func (c *Canvas) Commit(b raster.Buffer) error {
	if !c.Bound() {
		return errors.New("surface: no canvas bound")
	}
	w, h := c.Size()
	if err := b.CheckSize(w, h); err != nil {
		return fmt.Errorf("%w: %v", ErrSizeMismatch, err)
	}
	for y := 0; y < h; y++ {
		copy(c.img.Pix[y*c.img.Stride:y*c.img.Stride+w*4], b.Pix[y*w*4:(y+1)*w*4])
	}
	return nil
}

// StrokeQuad strokes the quadratic curve from -> ctrl -> to with st and
// composites it over the canvas.
func (c *Canvas) StrokeQuad(from, ctrl, to Point, st Style) error {
	if !c.Bound() {
		return nil
	}
	if st.Width <= 0 {
		return fmt.Errorf("surface: stroke width %v must be positive", st.Width)
	}
	col := st.Color
	if col == nil {
		col = color.Black
	}

	pad := st.Width/2 + 2
	minX := math.Floor(math.Min(from.X, math.Min(ctrl.X, to.X)) - pad)
	minY := math.Floor(math.Min(from.Y, math.Min(ctrl.Y, to.Y)) - pad)
	maxX := math.Ceil(math.Max(from.X, math.Max(ctrl.X, to.X)) + pad)
	maxY := math.Ceil(math.Max(from.Y, math.Max(ctrl.Y, to.Y)) + pad)
	area := image.Rect(int(minX), int(minY), int(maxX), int(maxY)).Intersect(c.img.Bounds())
	if area.Empty() {
		return nil
	}

	// Rasterize into a layer covering only the stroke's bounding box.
	lw, lh := area.Dx(), area.Dy()
	pm := gg.NewPixmap(lw, lh)
	dc := gg.NewContext(lw, lh, gg.WithPixmap(pm))
	defer dc.Close()
	dc.SetColor(col)
	dc.SetLineWidth(st.Width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	dc.MoveTo(from.X-ox, from.Y-oy)
	dc.QuadraticTo(ctrl.X-ox, ctrl.Y-oy, to.X-ox, to.Y-oy)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("surface: stroke: %w", err)
	}

	// gg keeps premultiplied samples.
	layer := &image.RGBA{Pix: pm.Data(), Stride: lw * 4, Rect: image.Rect(0, 0, lw, lh)}
	draw.Draw(c.img, area, layer, image.Point{}, draw.Over)
	return nil
}

// Image exposes the live canvas pixels. Callers must not retain it across
// calls that resize the canvas.
func (c *Canvas) Image() *image.NRGBA {
	if !c.Bound() {
		return nil
	}
	return c.img
}

// Snapshot returns an independent copy of the canvas as an image.
func (c *Canvas) Snapshot() *image.NRGBA {
	b, ok := c.Extract()
	if !ok {
		return nil
	}
	return b.NRGBA()
}
