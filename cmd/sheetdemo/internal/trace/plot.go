package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Plot dimensions in pixels.
const (
	PlotWidth  = 720
	PlotHeight = 420

	marginLeft   = 90
	marginRight  = 20
	marginTop    = 30
	marginBottom = 30
	strokeWidth  = 2.0
)

var (
	backgroundColor = color.RGBA{0x1e, 0x1e, 0x24, 0xff}
	anchorColor     = color.RGBA{0x5c, 0x5c, 0x70, 0xff}
	curveColor      = color.RGBA{0xff, 0x79, 0xc6, 0xff}
	textColor       = color.RGBA{0xdd, 0xdd, 0xe6, 0xff}
)

// Render draws the trace: time runs left to right, offsets top to bottom as
// on screen, with one labelled line per anchor.
func (t *Trace) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PlotWidth, PlotHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	minOffset, maxOffset := t.offsetRange()
	duration := 0.0
	if n := len(t.Points); n > 0 {
		duration = t.Points[n-1].At.Seconds()
	}
	if duration <= 0 {
		duration = 1
	}
	plotW := float64(PlotWidth - marginLeft - marginRight)
	plotH := float64(PlotHeight - marginTop - marginBottom)
	x := func(seconds float64) float32 {
		return float32(marginLeft + seconds/duration*plotW)
	}
	y := func(offset float64) float32 {
		return float32(marginTop + (offset-minOffset)/(maxOffset-minOffset)*plotH)
	}

	anchors := vector.NewRasterizer(PlotWidth, PlotHeight)
	for _, a := range t.Anchors.Anchors() {
		ay := y(a.Offset)
		strokeSegment(anchors, x(0), ay, x(duration), ay, 1)
		label(img, 6, int(ay)+4, fmt.Sprintf("%v %g", a.Value, a.Offset))
	}
	anchors.Draw(img, img.Bounds(), image.NewUniform(anchorColor), image.Point{})

	curve := vector.NewRasterizer(PlotWidth, PlotHeight)
	for i := 1; i < len(t.Points); i++ {
		p, q := t.Points[i-1], t.Points[i]
		strokeSegment(curve, x(p.At.Seconds()), y(p.Offset), x(q.At.Seconds()), y(q.Offset), strokeWidth)
	}
	curve.Draw(img, img.Bounds(), image.NewUniform(curveColor), image.Point{})

	label(img, marginLeft, 18, fmt.Sprintf("%s: settled on %v after %d frames", t.Scenario, t.Final, len(t.Points)))
	label(img, PlotWidth-marginRight-60, PlotHeight-10, fmt.Sprintf("%.0f ms", duration*1000))
	return img
}

// WritePNG encodes the rendered trace as PNG.
func (t *Trace) WritePNG(w io.Writer) error {
	return png.Encode(w, t.Render())
}

// offsetRange covers the anchors and every recorded offset.
func (t *Trace) offsetRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, a := range t.Anchors.Anchors() {
		lo, hi = math.Min(lo, a.Offset), math.Max(hi, a.Offset)
	}
	for _, p := range t.Points {
		lo, hi = math.Min(lo, p.Offset), math.Max(hi, p.Offset)
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if hi-lo < 1 {
		hi = lo + 1
	}
	return lo, hi
}

// strokeSegment adds a segment of the given width to z as a quad.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func label(img draw.Image, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
