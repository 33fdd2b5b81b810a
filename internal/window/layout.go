package window

import (
	"image"
	"math"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/surface"
)

const (
	panelWidth   = 220
	statusHeight = 20
	margin       = 8
	headerHeight = 24
	rowHeight    = 30
	trackHeight  = 6
	trackInset   = 10

	minWindowWidth  = 640
	minWindowHeight = 480
)

// windowSize returns the initial window size for a canvas of cw x ch.
func windowSize(cw, ch int) (int, int) {
	w := cw + panelWidth + 2*margin
	h := ch + statusHeight + 2*margin
	return max(w, minWindowWidth), max(h, minWindowHeight)
}

// canvasArea is the part of the window the canvas may occupy.
func canvasArea(winW, winH int, controls bool) image.Rectangle {
	x0 := margin
	if controls {
		x0 += panelWidth
	}
	r := image.Rect(x0, margin, winW-margin, winH-statusHeight-margin)
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// canvasRect centres a cw x ch canvas in the canvas area, shrinking it to
// fit. It returns the destination rectangle and the display scale.
func canvasRect(winW, winH, cw, ch int, controls bool) (image.Rectangle, float64) {
	area := canvasArea(winW, winH, controls)
	if cw <= 0 || ch <= 0 || area.Empty() {
		return image.Rectangle{}, 0
	}
	scale := math.Min(1, math.Min(float64(area.Dx())/float64(cw), float64(area.Dy())/float64(ch)))
	w := int(math.Round(float64(cw) * scale))
	h := int(math.Round(float64(ch) * scale))
	x0 := area.Min.X + (area.Dx()-w)/2
	y0 := area.Min.Y + (area.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h), scale
}

// toCanvas maps window coordinates to canvas pixels. It reports false when
// the point is outside the displayed canvas.
func toCanvas(x, y float32, r image.Rectangle, scale float64) (surface.Point, bool) {
	if scale <= 0 || !image.Pt(int(x), int(y)).In(r) {
		return surface.Point{}, false
	}
	return surface.Pt((float64(x)-float64(r.Min.X))/scale, (float64(y)-float64(r.Min.Y))/scale), true
}

// sliderRow returns the rectangle of slider i in the panel.
func sliderRow(i int) image.Rectangle {
	y := margin + headerHeight + i*rowHeight
	return image.Rect(0, y, panelWidth, y+rowHeight)
}

// trackRect returns the slider track inside row.
func trackRect(row image.Rectangle) image.Rectangle {
	y := row.Max.Y - trackHeight - 4
	return image.Rect(row.Min.X+trackInset, y, row.Max.X-trackInset, y+trackHeight)
}

// sliderAt returns the slider under the point, or -1.
func sliderAt(p image.Point) int {
	for i := range adjust.Names() {
		if p.In(sliderRow(i)) {
			return i
		}
	}
	return -1
}

// trackValue converts an x position on the track into a slider value.
func trackValue(x int, track image.Rectangle) float64 {
	if track.Dx() <= 0 {
		return 0
	}
	t := float64(x-track.Min.X) / float64(track.Dx())
	return clampSlider(math.Round(adjust.Min + t*(adjust.Max-adjust.Min)))
}

// trackX is the inverse of trackValue.
func trackX(v float64, track image.Rectangle) int {
	t := (clampSlider(v) - adjust.Min) / (adjust.Max - adjust.Min)
	return track.Min.X + int(math.Round(t*float64(track.Dx())))
}
