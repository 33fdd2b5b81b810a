package window

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/photoedit/internal/adjust"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/theme"
)

const checkerSize = 8

// paintState is everything a frame needs apart from the canvas pixels.
type paintState struct {
	width, height int
	state         editor.State
	selected      int
	status        string
}

// paintFrame draws one frame into dst. canvas may be nil.
func paintFrame(dst *image.RGBA, th *theme.Theme, st paintState, canvas *image.NRGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	if canvas != nil {
		b := canvas.Bounds()
		r, _ := canvasRect(st.width, st.height, b.Dx(), b.Dy(), st.state.ShowControls)
		if !r.Empty() {
			drawCheckerboard(dst, r, checkerSize, th.CheckerLight, th.CheckerDark)
			xdraw.ApproxBiLinear.Scale(dst, r, canvas, b, draw.Over, nil)
		}
	} else {
		area := canvasArea(st.width, st.height, st.state.ShowControls)
		msg := "no image: Ctrl+V to paste, Ctrl+P to grab the screen"
		drawText(dst, msg, th.Foreground, area.Min.X+margin, area.Min.Y+area.Dy()/2)
	}

	if st.state.ShowControls {
		drawPanel(dst, th, st)
	}
	drawStatus(dst, th, st)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func drawPanel(dst *image.RGBA, th *theme.Theme, st paintState) {
	panel := image.Rect(0, 0, panelWidth, st.height-statusHeight)
	draw.Draw(dst, panel, image.NewUniform(th.PanelBackground), image.Point{}, draw.Src)
	drawText(dst, "Adjustments", th.PanelText, margin, margin+14)

	for i, name := range adjust.Names() {
		row := sliderRow(i)
		if i == st.selected {
			draw.Draw(dst, row, image.NewUniform(th.PanelSelected), image.Point{}, draw.Src)
		}
		v, _ := st.state.Params.Get(name)
		label := fmt.Sprintf("%d %s", (i+1)%10, name)
		if i >= 10 {
			label = "  " + name
		}
		drawText(dst, label, th.PanelText, row.Min.X+trackInset, row.Min.Y+13)
		val := fmt.Sprintf("%+.0f", v)
		drawText(dst, val, th.PanelText, row.Max.X-trackInset-textWidth(val), row.Min.Y+13)
		drawSlider(dst, th, trackRect(row), v)
	}

	y := sliderRow(len(adjust.Names())).Min.Y + 14
	b := st.state.Brush
	lines := []string{
		"filter: " + st.state.Filter.String(),
		fmt.Sprintf("rotation: %.0f", st.state.Rotation),
		fmt.Sprintf("brush: %.0fpx %s", b.Size, editor.FormatColor(b.Color)),
		"drawing: " + onOff(st.state.DrawingMode),
		fmt.Sprintf("undo: %d", st.state.Undo),
		"",
	}
	lines = append(lines, helpLines()...)
	for _, line := range lines {
		if y > panel.Max.Y-4 {
			break
		}
		drawText(dst, line, th.PanelText, margin, y)
		y += 15
	}
}

func drawSlider(dst *image.RGBA, th *theme.Theme, track image.Rectangle, v float64) {
	draw.Draw(dst, track, image.NewUniform(th.SliderTrack), image.Point{}, draw.Src)
	centre := trackX(0, track)
	pos := trackX(v, track)
	fill := image.Rect(min(centre, pos), track.Min.Y, max(centre, pos), track.Max.Y)
	draw.Draw(dst, fill, image.NewUniform(th.SliderFill), image.Point{}, draw.Src)
	tick := image.Rect(centre, track.Min.Y-2, centre+1, track.Max.Y+2)
	draw.Draw(dst, tick, image.NewUniform(th.SliderCenter), image.Point{}, draw.Src)
	knob := image.Rect(pos-2, track.Min.Y-3, pos+3, track.Max.Y+3)
	draw.Draw(dst, knob, image.NewUniform(th.SliderFill), image.Point{}, draw.Src)
}

func drawStatus(dst *image.RGBA, th *theme.Theme, st paintState) {
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, image.NewUniform(th.PanelBackground), image.Point{}, draw.Src)
	msg := st.status
	if msg == "" {
		parts := []string{}
		if st.state.HasImage {
			parts = append(parts, fmt.Sprintf("%dx%d", st.state.Width, st.state.Height))
		}
		if st.state.DrawingMode {
			parts = append(parts, "drag to draw")
		}
		msg = strings.Join(parts, "  ")
	}
	drawText(dst, msg, th.Foreground, margin, bar.Min.Y+14)
}

func drawText(dst *image.RGBA, s string, col color.Color, x, y int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func textWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
