package render

import "math"

// Default viewport limits.
const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 600
)

// Fit returns the largest size with the aspect ratio of w x h that fits
// within maxW x maxH. Images that already fit are returned unchanged; Fit
// never upscales. Width is constrained first, then height, and fractional
// sizes are truncated. Non-positive limits leave that axis unconstrained.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	fw, fh := float64(w), float64(h)
	if maxW > 0 && fw > float64(maxW) {
		fh = fh * float64(maxW) / fw
		fw = float64(maxW)
	}
	if maxH > 0 && fh > float64(maxH) {
		fw = fw * float64(maxH) / fh
		fh = float64(maxH)
	}
	return atLeastOne(fw), atLeastOne(fh)
}

func atLeastOne(v float64) int {
	n := int(v)
	if n < 1 {
		return 1
	}
	return n
}

// NormalizeRotation maps deg into [0, 360).
func NormalizeRotation(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}
