package chart

import (
	"image"
	"image/color"
	"math"

	"github.com/randomtoy/auradream/internal/domain"
)

// Spectrum bar dimensions.
const (
	SpectrumWidth  = 480
	SpectrumHeight = 140
)

const (
	trackLeft   = 16
	trackRight  = SpectrumWidth - 16
	trackTop    = 44
	trackBottom = 92
)

var (
	spectrumBackground = color.RGBA{R: 250, G: 248, B: 252, A: 255}
	spectrumTrack      = color.RGBA{R: 228, G: 224, B: 236, A: 255}
	spectrumText       = color.RGBA{R: 40, G: 36, B: 56, A: 255}
)

// DimensionColor is the aura colour assigned to each dimension.
func DimensionColor(d domain.Dimension) color.RGBA {
	switch d {
	case domain.Fear:
		return color.RGBA{R: 0x1f, G: 0x3b, B: 0x73, A: 255}
	case domain.Desire:
		return color.RGBA{R: 0xe7, G: 0x54, B: 0x80, A: 255}
	case domain.Calm:
		return color.RGBA{R: 0x7f, G: 0xc8, B: 0xf8, A: 255}
	case domain.Mystery:
		return color.RGBA{R: 0x6a, G: 0x4c, B: 0x93, A: 255}
	case domain.Connection:
		return color.RGBA{R: 0xf4, G: 0xa2, B: 0x61, A: 255}
	case domain.Transformation:
		return color.RGBA{R: 0xf6, G: 0xe0, B: 0x5e, A: 255}
	}
	return color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
}

// Band is one coloured segment of the spectrum bar.
type Band struct {
	Dimension domain.Dimension
	Color     color.RGBA
	Rect      image.Rectangle
}

// SpectrumBands lays out one band per dimension, left to right in
// domain.Dimensions order, each as wide as its share of the total. An
// all-zero vector yields empty bands.
func SpectrumBands(v domain.EmotionVector) []Band {
	dims := domain.Dimensions()
	bands := make([]Band, len(dims))
	total := v.Sum()
	span := float64(trackRight - trackLeft)

	var cum float64
	x0 := trackLeft
	for i, d := range dims {
		x1 := x0
		if total > 0 {
			cum += v.Get(d)
			x1 = trackLeft + int(math.Round(cum/total*span))
		}
		bands[i] = Band{
			Dimension: d,
			Color:     DimensionColor(d),
			Rect:      image.Rect(x0, trackTop, x1, trackBottom),
		}
		x0 = x1
	}
	return bands
}

// Spectrum renders the aura energy distribution of v as a stacked bar with
// a legend.
func Spectrum(v domain.EmotionVector) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpectrumWidth, SpectrumHeight))
	fill(img, spectrumBackground)
	fillRect(img, image.Rect(trackLeft, trackTop, trackRight, trackBottom), spectrumTrack)

	for _, b := range SpectrumBands(v) {
		fillRect(img, b.Rect, b.Color)
	}

	title := newFace(17)
	defer title.Close()
	drawText(img, title, "Aura Energy Spectrum", SpectrumWidth/2, 30, spectrumText)

	face := newFace(11)
	defer face.Close()
	const perRow = 3
	slot := float64(trackRight-trackLeft) / perRow
	for i, d := range domain.Dimensions() {
		x := trackLeft + slot*float64(i%perRow)
		baseline := 112 + 18*(i/perRow)
		fillRect(img, image.Rect(int(x), baseline-9, int(x)+9, baseline), DimensionColor(d))
		drawTextLeft(img, face, d.String(), x+14, float64(baseline), spectrumText)
	}
	return img
}
