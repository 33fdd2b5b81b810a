// Package stats summarizes the tonal distribution of a raster buffer.
package stats

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/example/photoedit/internal/raster"
)

// Bins is the number of histogram buckets per channel.
const Bins = 16

// Channel summarizes one channel on the 0-255 scale.
type Channel struct {
	Name      string
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	Median    float64
	Histogram [Bins]float64
}

// Report covers the colour channels, the luminance and the correlation
// between red, green and blue.
type Report struct {
	Width, Height int
	Channels      []Channel
	Correlation   *mat.SymDense
}

// Compute builds a report for b. Fully transparent pixels are ignored.
func Compute(b raster.Buffer) (Report, error) {
	if !b.Valid() || b.Empty() {
		return Report{}, fmt.Errorf("stats: empty buffer")
	}
	n := b.Width * b.Height
	data := mat.NewDense(n, 3, nil)
	r := make([]float64, 0, n)
	g := make([]float64, 0, n)
	bl := make([]float64, 0, n)
	l := make([]float64, 0, n)
	for i := 0; i+3 < len(b.Pix); i += 4 {
		if b.Pix[i+3] == 0 {
			continue
		}
		rv, gv, bv := float64(b.Pix[i]), float64(b.Pix[i+1]), float64(b.Pix[i+2])
		data.Set(len(r), 0, rv)
		data.Set(len(r), 1, gv)
		data.Set(len(r), 2, bv)
		r = append(r, rv)
		g = append(g, gv)
		bl = append(bl, bv)
		l = append(l, raster.Luminance(rv, gv, bv))
	}
	if len(r) == 0 {
		return Report{}, fmt.Errorf("stats: every pixel is transparent")
	}
	rep := Report{Width: b.Width, Height: b.Height}
	for _, c := range []struct {
		name string
		xs   []float64
	}{{"red", r}, {"green", g}, {"blue", bl}, {"luminance", l}} {
		rep.Channels = append(rep.Channels, channel(c.name, c.xs))
	}
	if len(r) > 1 {
		rows := data.Slice(0, len(r), 0, 3)
		corr := mat.NewSymDense(3, nil)
		stat.CorrelationMatrix(corr, rows, nil)
		rep.Correlation = corr
	}
	return rep, nil
}

func channel(name string, xs []float64) Channel {
	c := Channel{Name: name}
	c.Mean, c.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) < 2 {
		c.StdDev = 0
	}
	c.Min = floats.Min(xs)
	c.Max = floats.Max(xs)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	c.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	dividers := make([]float64, Bins+1)
	floats.Span(dividers, 0, 256)
	hist := stat.Histogram(nil, dividers, sorted, nil)
	copy(c.Histogram[:], hist)
	return c
}

// Write prints a plain-text table of the report.
func (r Report) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "size: %dx%d\n", r.Width, r.Height); err != nil {
		return err
	}
	for _, c := range r.Channels {
		if _, err := fmt.Fprintf(w, "%-9s mean=%6.2f sd=%6.2f min=%3.0f median=%5.1f max=%3.0f\n",
			c.Name, c.Mean, c.StdDev, c.Min, c.Median, c.Max); err != nil {
			return err
		}
	}
	if r.Correlation != nil {
		if _, err := fmt.Fprintf(w, "corr rg=%.3f rb=%.3f gb=%.3f\n",
			r.Correlation.At(0, 1), r.Correlation.At(0, 2), r.Correlation.At(1, 2)); err != nil {
			return err
		}
	}
	return nil
}
