package chart

import (
	"image"
	"image/color"
	"math"

	"github.com/randomtoy/auradream/internal/domain"
)

// RadarSize is the width and height of a radar chart.
const RadarSize = 480

const (
	radarCenterX = RadarSize / 2
	radarCenterY = RadarSize/2 + 12
	radarRadius  = 160
	radarRings   = 5
)

var (
	radarBackground = color.RGBA{R: 250, G: 248, B: 252, A: 255}
	radarGridColor  = color.RGBA{R: 210, G: 205, B: 222, A: 255}
	radarLineColor  = color.RGBA{R: 106, G: 76, B: 147, A: 255}
	radarFillColor  = color.NRGBA{R: 106, G: 76, B: 147, A: 64}
	radarTextColor  = color.RGBA{R: 40, G: 36, B: 56, A: 255}
)

// Axis describes one spoke of the radar chart.
type Axis struct {
	Dimension domain.Dimension
	Label     string
	// Angle in radians, measured clockwise from the top of the chart.
	Angle float64
}

// RadarAxes returns the spokes in the order they are drawn. The first axis
// points up and the rest follow clockwise in domain.Dimensions order.
func RadarAxes() []Axis {
	dims := domain.Dimensions()
	axes := make([]Axis, len(dims))
	for i, d := range dims {
		axes[i] = Axis{
			Dimension: d,
			Label:     d.String(),
			Angle:     2 * math.Pi * float64(i) / float64(len(dims)),
		}
	}
	return axes
}

// RadarPoint returns the pixel position of value along the axis of d.
func RadarPoint(d domain.Dimension, value float64) (x, y float64) {
	for _, a := range RadarAxes() {
		if a.Dimension == d {
			p := axisPoint(a, value)
			return p.X, p.Y
		}
	}
	return radarCenterX, radarCenterY
}

func axisPoint(a Axis, value float64) point {
	r := radarRadius * value
	return point{
		X: radarCenterX + r*math.Sin(a.Angle),
		Y: radarCenterY - r*math.Cos(a.Angle),
	}
}

// Radar renders the six dimensions of v as a filled radar polygon.
func Radar(v domain.EmotionVector) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, RadarSize, RadarSize))
	fill(img, radarBackground)

	axes := RadarAxes()
	for ring := 1; ring <= radarRings; ring++ {
		level := float64(ring) / radarRings
		pts := make([]point, len(axes))
		for i, a := range axes {
			pts[i] = axisPoint(a, level)
		}
		strokePolygon(img, pts, 1, radarGridColor)
	}
	center := point{radarCenterX, radarCenterY}
	for _, a := range axes {
		strokeLine(img, center, axisPoint(a, 1), 1, radarGridColor)
	}

	shape := make([]point, len(axes))
	for i, a := range axes {
		shape[i] = axisPoint(a, v.Get(a.Dimension))
	}
	fillPolygon(img, shape, radarFillColor)
	strokePolygon(img, shape, 2, radarLineColor)
	for _, p := range shape {
		fillCircle(img, p, 3.5, radarLineColor)
	}

	face := newFace(13)
	defer face.Close()
	for _, a := range axes {
		p := axisPoint(a, 1.14)
		drawText(img, face, a.Label, p.X, p.Y+5, radarTextColor)
	}

	title := newFace(17)
	defer title.Close()
	drawText(img, title, "Dream Emotion Radar", RadarSize/2, 30, radarTextColor)
	return img
}
