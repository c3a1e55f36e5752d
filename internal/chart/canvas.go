package chart

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

type point struct{ X, Y float64 }

func fill(dst *image.RGBA, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// fillPolygon rasterizes a closed polygon with antialiasing.
func fillPolygon(dst *image.RGBA, pts []point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// strokeLine draws a segment of the given width as a filled quad.
func strokeLine(dst *image.RGBA, a, b point, width float64, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	fillPolygon(dst, []point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}, c)
}

func strokePolygon(dst *image.RGBA, pts []point, width float64, c color.Color) {
	for i := range pts {
		strokeLine(dst, pts[i], pts[(i+1)%len(pts)], width, c)
	}
}

func fillCircle(dst *image.RGBA, center point, r float64, c color.Color) {
	const segments = 20
	pts := make([]point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = point{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
	}
	fillPolygon(dst, pts, c)
}

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
)

// newFace returns a label face of the given size. Faces are not safe for
// concurrent use, so every render creates its own and closes it.
func newFace(size float64) font.Face {
	goRegularOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			goRegular = f
		}
	})
	if goRegular == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(goRegular, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// drawText draws s horizontally centred on x with its baseline at y.
func drawText(dst *image.RGBA, face font.Face, s string, x, y float64, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	w := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x*64)) - w/2,
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
	d.DrawString(s)
}

// drawTextLeft draws s with its left edge at x and its baseline at y.
func drawTextLeft(dst *image.RGBA, face font.Face, s string, x, y float64, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))},
	}
	d.DrawString(s)
}
